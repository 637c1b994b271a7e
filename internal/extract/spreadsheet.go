package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractSpreadsheet serializes the first sheet (by declared sheet order) to a
// comma-separated text table. Further sheets are ignored.
func extractSpreadsheet(data []byte) (*ExtractedContent, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &CorruptFileError{Format: "Excel", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &EmptyContentError{Format: "Excel", Hint: "the workbook contains no sheets"}
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &CorruptFileError{Format: "Excel", Err: err}
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, ","))
		sb.WriteString("\n")
	}

	table := sb.String()
	if strings.TrimSpace(table) == "" {
		return nil, &EmptyContentError{
			Format: "Excel",
			Hint:   fmt.Sprintf("sheet %q has no data rows", sheet),
		}
	}

	content := fmt.Sprintf("--- Excel Sheet: %s ---\n%s", sheet, table)
	return &ExtractedContent{Kind: KindText, Content: content}, nil
}
