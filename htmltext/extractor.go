// Package htmltext provides the most lenient TextExtractor in the chain. It
// walks raw tokens with x/net/html instead of building a DOM, so it still
// produces text for markup the tree-building back-ends reject. It sits last
// in the default chain as the pattern-based fallback.
package htmltext

import (
	"strings"

	"github.com/dsullivan/warctext"
	"golang.org/x/net/html"
)

// skippedElements whose text content is never readable.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// Ensure Extractor implements warctext.TextExtractor at compile time.
var _ warctext.TextExtractor = (*Extractor)(nil)

// Extractor collects text tokens from an HTML token stream.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// CanHandle reports whether the content type carries HTML.
func (e *Extractor) CanHandle(ct warctext.ContentType) bool {
	return ct.IsHTML()
}

// Extract tokenizes the payload and joins the text tokens with normalized
// whitespace. Content that is not markup at all is returned trimmed as-is.
func (e *Extractor) Extract(input warctext.ExtractionInput) (string, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return "", warctext.Errorf(warctext.EEXTRACT, "empty HTML input")
	}
	if !strings.HasPrefix(content, "<") {
		return content, nil
	}

	z := html.NewTokenizer(strings.NewReader(content))

	var words []string
	skipDepth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// Tokenizer ends with io.EOF; anything read so far is kept.
			text := strings.Join(words, " ")
			if text == "" {
				return "", warctext.Errorf(warctext.EEXTRACT, "no text content found")
			}
			return text, nil

		case html.StartTagToken:
			name, _ := z.TagName()
			if skippedElements[string(name)] {
				skipDepth++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if skippedElements[string(name)] && skipDepth > 0 {
				skipDepth--
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			words = append(words, strings.Fields(string(z.Text()))...)
		}
	}
}
