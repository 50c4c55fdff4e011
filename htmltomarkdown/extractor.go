// Package htmltomarkdown provides a TextExtractor that renders the HTML
// payload as Markdown, preserving headings, lists, and tables in the
// extracted text.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/dsullivan/warctext"
)

// Ensure Extractor implements warctext.TextExtractor at compile time.
var _ warctext.TextExtractor = (*Extractor)(nil)

// Extractor wraps html-to-markdown to convert HTML payloads to Markdown.
type Extractor struct {
	conv *converter.Converter
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Extractor{conv: conv}
}

// CanHandle reports whether the content type carries HTML.
func (e *Extractor) CanHandle(ct warctext.ContentType) bool {
	return ct.IsHTML()
}

// Extract converts the HTML payload into Markdown text.
func (e *Extractor) Extract(input warctext.ExtractionInput) (string, error) {
	if strings.TrimSpace(input.Content) == "" {
		return "", warctext.Errorf(warctext.EEXTRACT, "empty HTML input")
	}

	result, err := e.conv.ConvertString(input.Content)
	if err != nil {
		return "", &warctext.Error{
			Code:    warctext.EEXTRACT,
			Message: "markdown conversion failed",
			Err:     err,
		}
	}

	text := strings.TrimSpace(result)
	if text == "" {
		return "", warctext.Errorf(warctext.EEXTRACT, "no text content found")
	}
	return text, nil
}
