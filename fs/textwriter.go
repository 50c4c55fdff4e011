package fs

import (
	"fmt"
	"os"
	"strings"

	"github.com/dsullivan/warctext"
)

// versionMarker opens and closes every record in the archive-text format.
const versionMarker = "WARC/1.0"

// canonicalHeaders are emitted explicitly in a fixed order and therefore
// skipped when the original headers are copied over. Content-Length is
// recomputed from the extracted text, never copied.
var canonicalHeaders = map[string]bool{
	"warc-type":           true,
	"warc-record-id":      true,
	"warc-date":           true,
	"warc-target-uri":     true,
	"content-type":        true,
	"warc-payload-digest": true,
	"content-length":      true,
}

// Ensure TextWriter implements warctext.OutputWriter at compile time.
var _ warctext.OutputWriter = (*TextWriter)(nil)

// TextWriter streams processed records in the archive-text format: for each
// record a version marker line, the ordered header block, a blank line, the
// extracted text, a blank line, and a closing marker line.
type TextWriter struct {
	file *os.File
}

// NewTextWriter creates an unconfigured TextWriter.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Configure validates the destination and opens it for streaming append.
func (w *TextWriter) Configure(path string) error {
	f, err := openDestination(path)
	if err != nil {
		return err
	}
	w.file = f
	return nil
}

// WriteRecord appends one record. The Content-Length header is recomputed
// from the UTF-8 byte length of the extracted text.
func (w *TextWriter) WriteRecord(rec *warctext.ProcessedRecord) error {
	if w.file == nil {
		return warctext.Errorf(warctext.ECONFIG, "writer is not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", versionMarker)
	fmt.Fprintf(&b, "WARC-Type: %s\n", rec.Record.RecordType)
	fmt.Fprintf(&b, "WARC-Record-ID: %s\n", rec.Record.RecordID)
	fmt.Fprintf(&b, "WARC-Date: %s\n", rec.Record.Date.UTC().Format(warctext.TimestampLayout))
	fmt.Fprintf(&b, "WARC-Target-URI: %s\n", rec.Record.TargetURI)
	fmt.Fprintf(&b, "Content-Type: %s\n", rec.Record.ContentType)
	if rec.Record.PayloadDigest != "" {
		fmt.Fprintf(&b, "WARC-Payload-Digest: %s\n", rec.Record.PayloadDigest)
	}
	for _, f := range rec.Record.Headers {
		if canonicalHeaders[strings.ToLower(f.Name)] {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", f.Name, f.Value)
	}
	fmt.Fprintf(&b, "Content-Length: %d\n", len(rec.ExtractedText))
	b.WriteString("\n")
	b.WriteString(rec.ExtractedText)
	fmt.Fprintf(&b, "\n\n%s\n\n", versionMarker)

	if _, err := w.file.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Close flushes and closes the destination. The archive-text format needs no
// trailer, so the file is complete after every record.
func (w *TextWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
