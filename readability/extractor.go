// Package readability provides a TextExtractor backed by go-readability's
// Mozilla Readability port.
package readability

import (
	"strings"

	"github.com/dsullivan/warctext"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements warctext.TextExtractor at compile time.
var _ warctext.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract readable text from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// CanHandle reports whether the content type carries HTML.
func (e *Extractor) CanHandle(ct warctext.ContentType) bool {
	return ct.IsHTML()
}

// Extract runs readability over the HTML payload and returns the article text.
func (e *Extractor) Extract(input warctext.ExtractionInput) (string, error) {
	if strings.TrimSpace(input.Content) == "" {
		return "", warctext.Errorf(warctext.EEXTRACT, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(input.Content), nil)
	if err != nil {
		return "", &warctext.Error{
			Code:    warctext.EEXTRACT,
			Message: "readability extraction failed",
			Err:     err,
		}
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", warctext.Errorf(warctext.EEXTRACT, "no readable content found")
	}
	return text, nil
}
