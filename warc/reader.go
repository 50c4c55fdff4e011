// Package warc reads WARC container archives entry by entry. It handles the
// low-level framing only: record headers, payload lengths, the HTTP preamble
// inside response payloads, and transparent gzip decompression. Everything
// above the raw entry is the parser's concern.
package warc

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsullivan/warctext"
)

// Ensure Reader implements warctext.RecordSource at compile time.
var _ warctext.RecordSource = (*Reader)(nil)

// Reader iterates raw entries from a WARC file in file order.
type Reader struct {
	file *os.File
	gz   *gzip.Reader
	br   *bufio.Reader

	// payload of the current entry; drained before the next entry is read.
	payload io.Reader
}

// Open opens a WARC archive for reading. Gzip compression is detected from
// the magic bytes and decompressed transparently, including the common
// member-per-record layout.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	br := bufio.NewReaderSize(f, 64*1024)

	r := &Reader{file: f}
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		r.gz = gz
		r.br = bufio.NewReaderSize(gz, 64*1024)
	} else {
		r.br = br
	}

	return r, nil
}

// Next returns the next raw entry, or io.EOF when the archive is exhausted.
// The previous entry's Body is invalidated by the call.
func (r *Reader) Next() (*warctext.RawRecord, error) {
	if r.payload != nil {
		if _, err := io.Copy(io.Discard, r.payload); err != nil {
			return nil, fmt.Errorf("failed to skip payload: %w", err)
		}
		r.payload = nil
	}

	version, err := r.readVersionLine()
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(version, "WARC/") {
		return nil, fmt.Errorf("malformed record: expected version marker, got %q", version)
	}

	headers, err := readHeaderBlock(r.br)
	if err != nil {
		return nil, fmt.Errorf("malformed record header block: %w", err)
	}

	length, err := strconv.ParseInt(headers.Get("Content-Length"), 10, 64)
	if err != nil || length < 0 {
		return nil, fmt.Errorf("malformed record: bad Content-Length %q", headers.Get("Content-Length"))
	}

	raw := &warctext.RawRecord{
		Type:    headers.Get("WARC-Type"),
		Headers: headers,
	}

	body := bufio.NewReader(io.LimitReader(r.br, length))
	r.payload = body

	// Response payloads open with an HTTP preamble; split it off so the
	// parser sees status, headers, and body separately.
	if raw.Type == warctext.RecordTypeResponse {
		if peeked, err := body.Peek(5); err == nil && string(peeked) == "HTTP/" {
			status, httpHeaders, err := readHTTPPreamble(body)
			if err != nil {
				return nil, fmt.Errorf("malformed HTTP preamble: %w", err)
			}
			raw.HTTPStatus = status
			raw.HTTPHeaders = httpHeaders
		}
	}
	raw.Body = body

	return raw, nil
}

// Close releases the underlying file and any compression stream.
func (r *Reader) Close() error {
	var gzErr error
	if r.gz != nil {
		gzErr = r.gz.Close()
	}
	if err := r.file.Close(); err != nil {
		return err
	}
	return gzErr
}

// readVersionLine skips the blank separator lines between records and
// returns the next non-empty line.
func (r *Reader) readVersionLine() (string, error) {
	for {
		line, err := readLine(r.br)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

// readLine reads one line and strips the trailing CRLF or LF.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readHeaderBlock reads "Name: value" lines until a blank line, preserving
// file order. Continuation lines (leading whitespace) extend the previous
// value.
func readHeaderBlock(br *bufio.Reader) (warctext.Header, error) {
	var headers warctext.Header
	for {
		line, err := readLine(br)
		if err != nil {
			return nil, err
		}
		if line == "" {
			return headers, nil
		}

		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(headers) > 0 {
			headers[len(headers)-1].Value += " " + strings.TrimSpace(line)
			continue
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("invalid header line %q", line)
		}
		headers.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
}

// readHTTPPreamble reads the status line and headers from the start of a
// response payload, leaving the reader positioned at the body.
func readHTTPPreamble(br *bufio.Reader) (int, warctext.Header, error) {
	statusLine, err := readLine(br)
	if err != nil {
		return 0, nil, err
	}

	parts := strings.SplitN(statusLine, " ", 3)
	if len(parts) < 2 {
		return 0, nil, fmt.Errorf("invalid status line %q", statusLine)
	}
	status, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid status code in %q", statusLine)
	}

	headers, err := readHeaderBlock(br)
	if err != nil {
		return 0, nil, err
	}

	return status, headers, nil
}
