// Package slog provides logging decorators for pipeline contracts.
package slog

import (
	"log/slog"
	"time"

	"github.com/dsullivan/warctext"
)

// Ensure LoggingExtractor implements warctext.TextExtractor.
var _ warctext.TextExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a TextExtractor with per-record debug logging so a
// verbose run shows which backend handled each record and how long it took.
type LoggingExtractor struct {
	next   warctext.TextExtractor
	name   string
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor identified by name.
func NewLoggingExtractor(next warctext.TextExtractor, name string, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, name: name, logger: logger}
}

// CanHandle delegates to the wrapped extractor.
func (e *LoggingExtractor) CanHandle(ct warctext.ContentType) bool {
	return e.next.CanHandle(ct)
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(input warctext.ExtractionInput) (string, error) {
	begin := time.Now()
	text, err := e.next.Extract(input)
	if err != nil {
		e.logger.Debug("extraction failed",
			"extractor", e.name,
			"content_type", input.ContentType.String(),
			"duration", time.Since(begin),
			"error", warctext.ErrorMessage(err),
		)
		return "", err
	}

	e.logger.Debug("extraction succeeded",
		"extractor", e.name,
		"content_type", input.ContentType.String(),
		"duration", time.Since(begin),
		"text_bytes", len(text),
	)
	return text, nil
}
