// Package goquery provides a TextExtractor that strips non-content elements
// from the DOM and collects the remaining text. It is stricter than the
// readability-style back-ends: the whole document text is kept, only markup
// and script/style noise is removed.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dsullivan/warctext"
)

// strippedSelectors are removed from the document before text collection.
const strippedSelectors = "script, style, noscript, meta, link, template"

// Ensure Extractor implements warctext.TextExtractor at compile time.
var _ warctext.TextExtractor = (*Extractor)(nil)

// Extractor extracts document text using goquery DOM traversal.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// CanHandle reports whether the content type carries HTML.
func (e *Extractor) CanHandle(ct warctext.ContentType) bool {
	return ct.IsHTML()
}

// Extract parses the HTML, removes script/style noise, and returns the
// document text with normalized whitespace.
func (e *Extractor) Extract(input warctext.ExtractionInput) (string, error) {
	if strings.TrimSpace(input.Content) == "" {
		return "", warctext.Errorf(warctext.EEXTRACT, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input.Content))
	if err != nil {
		return "", &warctext.Error{
			Code:    warctext.EEXTRACT,
			Message: "failed to parse HTML",
			Err:     err,
		}
	}

	doc.Find(strippedSelectors).Remove()

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if text == "" {
		return "", warctext.Errorf(warctext.EEXTRACT, "no text content found")
	}
	return text, nil
}
