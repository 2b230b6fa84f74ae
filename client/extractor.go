package client

// TextExtractor turns PDF bytes into plain text, one visual line per text
// line. Implementations return an empty string (and no error) when the
// document carries no extractable text.
type TextExtractor interface {
	Name() string
	ExtractText(pdfData []byte) (string, error)
}

// DefaultExtractors returns the providers in fallback order.
func DefaultExtractors() []TextExtractor {
	return []TextExtractor{
		NewRowTextClient(),
		NewPlainTextClient(),
		NewContentStreamClient(),
	}
}
