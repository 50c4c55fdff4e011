package warctext

import "errors"

// Chain is an ordered fallback across text extractors.
//
// Extractors are tried in order. The first one whose CanHandle accepts the
// record's content type is invoked; if it fails, the chain continues with
// the next matching extractor rather than aborting. The record counts as
// failed only when every matching extractor failed.
type Chain struct {
	extractors []TextExtractor
}

// NewChain creates a chain that tries extractors in the given order.
func NewChain(extractors ...TextExtractor) *Chain {
	return &Chain{extractors: extractors}
}

// Len returns the number of extractors in the chain.
func (c *Chain) Len() int { return len(c.extractors) }

// Extract runs the record's content through the chain.
//
// It distinguishes two non-success outcomes so callers can count them
// separately: ENOTFOUND when no extractor matched the content type, and
// EEXTRACT when at least one matched but all matching extractors failed.
func (c *Chain) Extract(rec *Record) (string, error) {
	input := ExtractionInput{
		Content:     rec.Content,
		ContentType: rec.ContentType,
	}

	matched := false
	var lastErr error
	for _, ex := range c.extractors {
		if !ex.CanHandle(rec.ContentType) {
			continue
		}
		matched = true

		text, err := ex.Extract(input)
		if err != nil {
			lastErr = err
			continue
		}
		return text, nil
	}

	if !matched {
		return "", Errorf(ENOTFOUND, "no extractor matched content type %q", rec.ContentType)
	}
	return "", &Error{
		Code:    EEXTRACT,
		Message: "all matching extractors failed",
		Err:     lastErr,
	}
}

// IsNoMatch reports whether err is the chain's "no extractor matched"
// outcome, as opposed to an extraction failure.
func IsNoMatch(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ENOTFOUND
}
