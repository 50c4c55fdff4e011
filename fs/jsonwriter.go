package fs

import (
	"fmt"
	"os"

	"github.com/dsullivan/warctext"
	json "github.com/goccy/go-json"
)

// Ensure JSONWriter implements warctext.OutputWriter at compile time.
var _ warctext.OutputWriter = (*JSONWriter)(nil)

// JSONWriter streams processed records as a single JSON array. The opening
// bracket is written at configure time and the closing bracket at close
// time, so the file is a syntactically valid array even when zero records
// were written in between.
type JSONWriter struct {
	file  *os.File
	first bool
}

// recordObject is the serialized shape of one processed record.
type recordObject struct {
	Type        string            `json:"warc_type"`
	RecordID    string            `json:"record_id"`
	Date        string            `json:"date"`
	TargetURI   string            `json:"target_uri"`
	ContentType string            `json:"content_type"`
	Content     string            `json:"content"`
	Headers     warctext.Header   `json:"headers"`
	Metadata    map[string]string `json:"metadata"`
}

// NewJSONWriter creates an unconfigured JSONWriter.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// Configure validates the destination, opens it, and writes the opening
// array bracket.
func (w *JSONWriter) Configure(path string) error {
	f, err := openDestination(path)
	if err != nil {
		return err
	}
	if _, err := f.WriteString("[\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to initialize output: %w", err)
	}

	w.file = f
	w.first = true
	return nil
}

// WriteRecord appends one record object, comma-separated from the previous
// one. The date carries an explicit UTC offset; original headers are copied
// verbatim in insertion order.
func (w *JSONWriter) WriteRecord(rec *warctext.ProcessedRecord) error {
	if w.file == nil {
		return warctext.Errorf(warctext.ECONFIG, "writer is not configured")
	}

	metadata := rec.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	obj := recordObject{
		Type:        rec.Record.RecordType,
		RecordID:    rec.Record.RecordID.String(),
		Date:        rec.Record.Date.UTC().Format("2006-01-02T15:04:05") + "+00:00",
		TargetURI:   rec.Record.TargetURI.String(),
		ContentType: rec.Record.ContentType.String(),
		Content:     rec.ExtractedText,
		Headers:     rec.Record.Headers,
		Metadata:    metadata,
	}

	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if !w.first {
		if _, err := w.file.WriteString(",\n"); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	if _, err := w.file.Write(data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.first = false
	return nil
}

// Close writes the closing array bracket and closes the destination.
func (w *JSONWriter) Close() error {
	if w.file == nil {
		return nil
	}

	_, writeErr := w.file.WriteString("\n]\n")
	closeErr := w.file.Close()
	w.file = nil

	if writeErr != nil {
		return fmt.Errorf("failed to finalize output: %w", writeErr)
	}
	return closeErr
}
