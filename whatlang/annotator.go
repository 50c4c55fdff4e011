// Package whatlang annotates processed records with a content language. The
// original Content-Language response header wins when present; otherwise the
// language is detected from the extracted text with whatlanggo.
package whatlang

import (
	"strings"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/dsullivan/warctext"
)

// MetadataKey is the metadata map key the annotator writes.
const MetadataKey = "content-language"

// minTextLength below which detection is too unreliable to record.
const minTextLength = 20

// Ensure Annotator implements warctext.Annotator at compile time.
var _ warctext.Annotator = (*Annotator)(nil)

// Annotator detects the language of extracted text.
type Annotator struct{}

// NewAnnotator creates a new Annotator.
func NewAnnotator() *Annotator {
	return &Annotator{}
}

// Annotate records the content language in the record's metadata. Records
// whose language cannot be determined reliably are left untouched; Annotate
// never fails the record.
func (a *Annotator) Annotate(rec *warctext.ProcessedRecord) error {
	if header := rec.Record.Headers.Get("Content-Language"); header != "" {
		if langs := ParseContentLanguage(header); len(langs) > 0 {
			rec.Metadata[MetadataKey] = strings.Join(langs, ",")
			return nil
		}
	}

	if len(rec.ExtractedText) < minTextLength {
		return nil
	}

	info := whatlanggo.Detect(rec.ExtractedText)
	if !info.IsReliable() {
		return nil
	}

	rec.Metadata[MetadataKey] = whatlanggo.LangToString(info.Lang)
	return nil
}

// ParseContentLanguage parses a Content-Language header value into normalized
// primary language tags: "sv-SE, sv, en" becomes ["sv", "en"].
func ParseContentLanguage(header string) []string {
	seen := make(map[string]bool)
	var langs []string
	for _, tag := range strings.Split(header, ",") {
		lang := normalizeLanguageTag(tag)
		if lang == "" || seen[lang] {
			continue
		}
		seen[lang] = true
		langs = append(langs, lang)
	}
	return langs
}

// normalizeLanguageTag reduces a language tag to its lower-cased primary
// subtag: "en-US" becomes "en".
func normalizeLanguageTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.Index(tag, "-"); i >= 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}
