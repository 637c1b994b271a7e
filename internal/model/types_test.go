package model

import (
	"testing"
)

func TestStringSliceRoundTrip(t *testing.T) {
	in := StringSlice{"Tokyo", "Kyoto", "Osaka"}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out StringSlice
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(out) != 3 || out[0] != "Tokyo" || out[2] != "Osaka" {
		t.Errorf("round-trip = %v", out)
	}
}

func TestStringSliceNil(t *testing.T) {
	var in StringSlice
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != nil {
		t.Errorf("nil slice Value = %v, want nil", v)
	}

	var out StringSlice
	if err := out.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if out != nil {
		t.Errorf("Scan(nil) = %v, want nil", out)
	}
}

func TestAnswerMapRoundTrip(t *testing.T) {
	in := AnswerMap{1: "True", 2: "cairo "}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out AnswerMap
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if out[1] != "True" || out[2] != "cairo " {
		t.Errorf("round-trip = %v, answers must survive verbatim", out)
	}
}

func TestAnswerMapScanCorruptDegradesToEmpty(t *testing.T) {
	out := AnswerMap{9: "stale"}
	if err := out.Scan([]byte("{not json")); err != nil {
		t.Fatalf("Scan of corrupt value should not fail the read: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("corrupt value should degrade to an empty map, got %v", out)
	}
}

func TestAnswerMapScanString(t *testing.T) {
	var out AnswerMap
	if err := out.Scan(`{"3":"Paris"}`); err != nil {
		t.Fatalf("Scan(string): %v", err)
	}
	if out[3] != "Paris" {
		t.Errorf("out = %v", out)
	}
}
