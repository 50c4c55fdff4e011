// Package trafilatura provides a TextExtractor backed by go-trafilatura,
// which removes boilerplate and yields the main readable content.
package trafilatura

import (
	"strings"

	"github.com/dsullivan/warctext"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements warctext.TextExtractor at compile time.
var _ warctext.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract readable text from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// CanHandle reports whether the content type carries HTML.
func (e *Extractor) CanHandle(ct warctext.ContentType) bool {
	return ct.IsHTML()
}

// Extract runs trafilatura over the HTML payload and returns the main text.
func (e *Extractor) Extract(input warctext.ExtractionInput) (string, error) {
	if strings.TrimSpace(input.Content) == "" {
		return "", warctext.Errorf(warctext.EEXTRACT, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(input.Content), opts)
	if err != nil {
		return "", &warctext.Error{
			Code:    warctext.EEXTRACT,
			Message: "trafilatura extraction failed",
			Err:     err,
		}
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		return "", warctext.Errorf(warctext.EEXTRACT, "no readable content found")
	}
	return text, nil
}
