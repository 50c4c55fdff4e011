package warctext

// ExtractionInput is the single input shape passed to text extractors: the
// decoded payload plus its resolved content type.
type ExtractionInput struct {
	Content     string
	ContentType ContentType
}

// TextExtractor converts HTML payload content into plain text. Back-ends are
// independently interchangeable; the pipeline only depends on this contract.
type TextExtractor interface {
	// CanHandle reports whether this extractor accepts the content type.
	CanHandle(ct ContentType) bool

	// Extract converts the input into plain text. It returns an EEXTRACT
	// error when the content is malformed for this back-end.
	Extract(input ExtractionInput) (string, error)
}

// Annotator adds derived metadata to a processed record after extraction.
// Annotation failures must not fail the record; callers log and move on.
type Annotator interface {
	Annotate(rec *ProcessedRecord) error
}
