package extract

// MaxTextLength bounds the text handed to the generation model. Longer
// extractions are truncated silently at this boundary.
const MaxTextLength = 100000

// NormalizedContent is the two-shape representation the generation contract
// consumes, regardless of how many source formats exist upstream.
type NormalizedContent struct {
	Kind     Kind
	Text     string
	MimeType string
	Data     string
}

// Normalize re-tags extractor output into the generation contract's shape.
func Normalize(ec *ExtractedContent) NormalizedContent {
	if ec.Kind == KindImage {
		return NormalizedContent{Kind: KindImage, MimeType: ec.MimeType, Data: ec.Base64Data}
	}
	text := ec.Content
	if len([]rune(text)) > MaxTextLength {
		text = string([]rune(text)[:MaxTextLength])
	}
	return NormalizedContent{Kind: KindText, Text: text}
}
