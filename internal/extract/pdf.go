package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls text page by page, joining pages with a numbered delimiter
// so the generation prompt keeps the document's pagination.
func extractPDF(data []byte) (content *ExtractedContent, err error) {
	// The pdf package panics on some malformed inputs instead of returning an
	// error, so decode failures of either shape become CorruptFileError.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = &CorruptFileError{Format: "PDF", Err: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &CorruptFileError{Format: "PDF", Err: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &CorruptFileError{Format: "PDF", Err: err}
		}
		if i > 1 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("--- Page %d ---\n", i))
		sb.WriteString(strings.Join(strings.Fields(text), " "))
	}

	full := sb.String()
	if strings.TrimSpace(stripPageMarkers(full)) == "" {
		return nil, &EmptyContentError{
			Format: "PDF",
			Hint:   "no extractable text was found; the PDF is likely scanned, try uploading the pages as images instead",
		}
	}
	return &ExtractedContent{Kind: KindText, Content: full}, nil
}

func stripPageMarkers(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, "--- Page ") && strings.HasSuffix(line, " ---") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
