package extract

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Kind tags the two content shapes the extraction pipeline produces.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// ExtractedContent is the raw per-format decoder output: page-delimited text
// for PDFs, a serialized table for spreadsheets, or base64 bytes for images.
type ExtractedContent struct {
	Kind       Kind
	Content    string
	MimeType   string
	Base64Data string
}

// Format is the decode path chosen for an upload.
type Format string

const (
	FormatPDF         Format = "pdf"
	FormatSpreadsheet Format = "spreadsheet"
	FormatImage       Format = "image"
)

var extensionFormats = map[string]Format{
	".pdf":  FormatPDF,
	".xlsx": FormatSpreadsheet,
	".xls":  FormatSpreadsheet,
	".png":  FormatImage,
	".jpg":  FormatImage,
	".jpeg": FormatImage,
	".webp": FormatImage,
	".heic": FormatImage,
}

var mediaTypeFormats = map[string]Format{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FormatSpreadsheet,
	"application/vnd.ms-excel":                                          FormatSpreadsheet,
}

// DetectFormat resolves the decode path for a file: declared media type first,
// then a case-insensitive extension match. It never touches the file bytes, so
// callers can reject bad uploads before reading anything.
func DetectFormat(filename, mediaType string) (Format, error) {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if f, ok := mediaTypeFormats[mt]; ok {
		return f, nil
	}
	if strings.HasPrefix(mt, "image/") {
		return FormatImage, nil
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}
	return "", &UnsupportedTypeError{Filename: filename, MediaType: mediaType}
}

// ContentExtractor turns a file's bytes plus its declared media type into a
// single ExtractedContent. Extraction is all-or-nothing: a partial result is
// never returned.
type ContentExtractor interface {
	Extract(filename, mediaType string, data []byte) (*ExtractedContent, error)
}

type contentExtractor struct{}

func NewContentExtractor() ContentExtractor {
	return &contentExtractor{}
}

func (e *contentExtractor) Extract(filename, mediaType string, data []byte) (*ExtractedContent, error) {
	format, err := DetectFormat(filename, mediaType)
	if err != nil {
		return nil, err
	}

	log.Info().Str("file", filename).Str("format", string(format)).Int("bytes", len(data)).Msg("Extracting content")

	switch format {
	case FormatPDF:
		return extractPDF(data)
	case FormatSpreadsheet:
		return extractSpreadsheet(data)
	case FormatImage:
		return extractImage(filename, mediaType, data)
	}
	return nil, &UnsupportedTypeError{Filename: filename, MediaType: mediaType}
}
