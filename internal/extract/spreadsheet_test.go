package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, populate func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if populate != nil {
		populate(f)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("building workbook fixture: %v", err)
	}
	return buf.Bytes()
}

func TestExtractSpreadsheetFirstSheet(t *testing.T) {
	data := buildWorkbook(t, func(f *excelize.File) {
		f.SetSheetName("Sheet1", "Inventory")
		f.SetCellValue("Inventory", "A1", "Item")
		f.SetCellValue("Inventory", "B1", "Count")
		f.SetCellValue("Inventory", "A2", "Apples")
		f.SetCellValue("Inventory", "B2", 12)

		// A second sheet must be ignored entirely.
		f.NewSheet("Extras")
		f.SetCellValue("Extras", "A1", "should not appear")
	})

	ec, err := extractSpreadsheet(data)
	if err != nil {
		t.Fatalf("extractSpreadsheet: %v", err)
	}
	if ec.Kind != KindText {
		t.Errorf("Kind = %v, want %v", ec.Kind, KindText)
	}
	if !strings.HasPrefix(ec.Content, "--- Excel Sheet: Inventory ---\n") {
		t.Errorf("content missing sheet marker header:\n%s", ec.Content)
	}
	if !strings.Contains(ec.Content, "Item,Count\n") {
		t.Errorf("content missing comma-joined header row:\n%s", ec.Content)
	}
	if !strings.Contains(ec.Content, "Apples,12\n") {
		t.Errorf("content missing data row:\n%s", ec.Content)
	}
	if strings.Contains(ec.Content, "should not appear") {
		t.Error("content leaked cells from a non-first sheet")
	}
}

func TestExtractSpreadsheetEmptySheetIsEmptyNotCorrupt(t *testing.T) {
	data := buildWorkbook(t, nil)

	_, err := extractSpreadsheet(data)
	var empty *EmptyContentError
	if !errors.As(err, &empty) {
		t.Fatalf("error = %v (%T), want *EmptyContentError", err, err)
	}
	var corrupt *CorruptFileError
	if errors.As(err, &corrupt) {
		t.Error("an empty sheet must not be reported as a corrupt file")
	}
}

func TestExtractSpreadsheetGarbageIsCorrupt(t *testing.T) {
	_, err := extractSpreadsheet([]byte("not a zip archive"))
	var corrupt *CorruptFileError
	if !errors.As(err, &corrupt) {
		t.Fatalf("error = %v, want *CorruptFileError", err)
	}
}
