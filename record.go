package warctext

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"
)

// TimestampLayout is the canonical WARC-Date format used on output.
const TimestampLayout = "2006-01-02T15:04:05Z"

// RecordTypeResponse is the only record type the pipeline extracts text
// from; every other type is skipped by the parser.
const RecordTypeResponse = "response"

// HeaderField is a single name/value pair from a header block.
type HeaderField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Header is an ordered list of header fields. Order is preserved exactly as
// read from the archive; lookups are case-insensitive.
type Header []HeaderField

// Get returns the value of the first field with the given name, matched
// case-insensitively, or "" if the field is not present.
func (h Header) Get(name string) string {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

// Has reports whether a field with the given name is present.
func (h Header) Has(name string) bool {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

// Add appends a field, preserving insertion order.
func (h *Header) Add(name, value string) {
	*h = append(*h, HeaderField{Name: name, Value: value})
}

// MarshalJSON encodes the header as a JSON object whose keys appear in
// insertion order, matching the original archive verbatim.
func (h Header) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RawRecord is one unparsed entry produced by the container reader. It is
// the single input shape consumed by the Parser: the reader has already
// split the WARC header block from the payload and, for response entries,
// parsed the HTTP preamble out of the payload.
type RawRecord struct {
	// Type is the WARC-Type of the entry (response, request, metadata, ...).
	Type string

	// Headers is the WARC header block, in file order.
	Headers Header

	// HTTPStatus is the status code from the payload's HTTP preamble, or 0
	// when the payload carries no HTTP block.
	HTTPStatus int

	// HTTPHeaders are the HTTP response headers from the payload, in file
	// order. Empty when the payload carries no HTTP block.
	HTTPHeaders Header

	// Body streams the payload bytes that follow the HTTP preamble.
	Body io.Reader
}

// Record is one parsed and validated archive entry.
//
// ContentLength always equals the byte length of Content at the time of
// construction, which is the decoded payload, not the on-disk payload.
type Record struct {
	RecordID      RecordID
	RecordType    string
	TargetURI     TargetURI
	Date          time.Time
	ContentType   ContentType
	Content       string
	ContentLength int

	// Headers are the original HTTP response headers, in file order.
	Headers Header

	// Optional fields, zero-valued when absent from the entry.
	PayloadDigest PayloadDigest
	IPAddress     string
	Truncated     string
}

// ProcessedRecord wraps a Record together with the text extracted from its
// payload. It is created once per surviving entry, handed to the output
// writer, and never mutated afterwards.
type ProcessedRecord struct {
	Record        *Record
	ExtractedText string
	Metadata      map[string]string
}

// NewProcessedRecord wraps a record and its extracted text. Metadata starts
// out empty but non-nil so annotators and writers never need a nil check.
func NewProcessedRecord(rec *Record, text string) *ProcessedRecord {
	return &ProcessedRecord{
		Record:        rec,
		ExtractedText: text,
		Metadata:      make(map[string]string),
	}
}

// ParseTimestamp parses a WARC-Date value. RFC 3339 timestamps with either
// a "Z" suffix or an explicit numeric offset are accepted; the result is
// normalized to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, Errorf(EINVALID, "invalid timestamp %q", s)
	}
	return t.UTC(), nil
}
