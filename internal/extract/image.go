package extract

import (
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// extractImage base64-encodes the raw bytes and captures the MIME type. No
// decoding or OCR happens here; reading the image is the generation model's job.
func extractImage(filename, mediaType string, data []byte) (*ExtractedContent, error) {
	if len(data) == 0 {
		return nil, &IOError{Err: fmt.Errorf("image file %q is empty or unreadable", filename)}
	}

	mimeType := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	}
	if mimeType == "" {
		// .heic is absent from the stdlib mime table on some platforms.
		if strings.EqualFold(filepath.Ext(filename), ".heic") {
			mimeType = "image/heic"
		} else {
			mimeType = "image/jpeg"
		}
	}

	return &ExtractedContent{
		Kind:       KindImage,
		MimeType:   mimeType,
		Base64Data: base64.StdEncoding.EncodeToString(data),
	}, nil
}
