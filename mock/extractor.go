package mock

import "github.com/dsullivan/warctext"

var _ warctext.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of warctext.TextExtractor.
type TextExtractor struct {
	CanHandleFn func(ct warctext.ContentType) bool
	ExtractFn   func(input warctext.ExtractionInput) (string, error)

	CanHandleInvoked bool
	ExtractInvoked   bool
}

func (e *TextExtractor) CanHandle(ct warctext.ContentType) bool {
	e.CanHandleInvoked = true
	return e.CanHandleFn(ct)
}

func (e *TextExtractor) Extract(input warctext.ExtractionInput) (string, error) {
	e.ExtractInvoked = true
	return e.ExtractFn(input)
}

var _ warctext.Annotator = (*Annotator)(nil)

// Annotator is a mock implementation of warctext.Annotator.
type Annotator struct {
	AnnotateFn func(rec *warctext.ProcessedRecord) error
}

func (a *Annotator) Annotate(rec *warctext.ProcessedRecord) error {
	return a.AnnotateFn(rec)
}
