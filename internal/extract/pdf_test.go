package extract

import (
	"errors"
	"testing"
)

func TestStripPageMarkers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"marker only", "--- Page 1 ---\n", ""},
		{"marker with text", "--- Page 1 ---\nhello", "hello"},
		{
			"multiple pages",
			"--- Page 1 ---\nfirst\n--- Page 2 ---\nsecond",
			"first\nsecond",
		},
		{"no markers", "plain text", "plain text"},
		{"marker-like text inline stays", "see --- Page 3 --- above", "see --- Page 3 --- above"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripPageMarkers(tt.in); got != tt.want {
				t.Errorf("stripPageMarkers(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractPDFGarbageIsCorruptNotPanic(t *testing.T) {
	_, err := extractPDF([]byte("%PDF-1.7 but truncated and broken"))
	var corrupt *CorruptFileError
	if !errors.As(err, &corrupt) {
		t.Fatalf("error = %v, want *CorruptFileError", err)
	}
}
