package warctext

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// defaultContentType is assumed when a response entry carries no
// Content-Type header.
const defaultContentType = "text/html"

// Parser converts raw container entries into validated Records.
//
// Parse is a pure transform with an explicit skip policy: every routine
// omission (wrong record type, non-200 status, missing required header,
// unreadable payload, malformed value) yields a nil record rather than an
// error, so one bad entry can never abort a run.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a Parser. A nil logger disables skip diagnostics.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{logger: logger}
}

// Parse converts a raw entry into a Record, or returns nil when the entry
// should be skipped.
func (p *Parser) Parse(raw *RawRecord) *Record {
	if raw == nil || raw.Type != RecordTypeResponse {
		p.logger.Debug("skip: not a response record")
		return nil
	}

	if raw.HTTPStatus != 0 && raw.HTTPStatus != http.StatusOK {
		p.logger.Debug("skip: non-200 response", "status", raw.HTTPStatus)
		return nil
	}

	recordID, err := ParseRecordID(raw.Headers.Get("WARC-Record-ID"))
	if err != nil {
		p.logger.Debug("skip: missing WARC-Record-ID")
		return nil
	}

	targetURI, err := ParseTargetURI(raw.Headers.Get("WARC-Target-URI"))
	if err != nil {
		p.logger.Debug("skip: bad WARC-Target-URI", "reason", ErrorMessage(err))
		return nil
	}

	date, err := ParseTimestamp(raw.Headers.Get("WARC-Date"))
	if err != nil {
		p.logger.Debug("skip: bad WARC-Date", "reason", ErrorMessage(err))
		return nil
	}

	ctValue := raw.HTTPHeaders.Get("Content-Type")
	if ctValue == "" {
		ctValue = defaultContentType
	}
	contentType, err := ParseContentType(ctValue)
	if err != nil {
		p.logger.Debug("skip: bad content type", "value", ctValue)
		return nil
	}

	content, ok := p.readBody(raw.Body)
	if !ok {
		return nil
	}

	rec := &Record{
		RecordID:      recordID,
		RecordType:    raw.Type,
		TargetURI:     targetURI,
		Date:          date,
		ContentType:   contentType,
		Content:       content,
		ContentLength: len(content),
		Headers:       raw.HTTPHeaders,
		IPAddress:     raw.Headers.Get("WARC-IP-Address"),
		Truncated:     raw.Headers.Get("WARC-Truncated"),
	}

	if v := raw.Headers.Get("WARC-Payload-Digest"); v != "" {
		digest, err := ParsePayloadDigest(v)
		if err != nil {
			p.logger.Debug("skip: bad payload digest", "value", v)
			return nil
		}
		rec.PayloadDigest = digest
	}

	return rec
}

// readBody reads the full payload and decodes it as UTF-8, replacing invalid
// byte sequences with U+FFFD.
func (p *Parser) readBody(body io.Reader) (string, bool) {
	if body == nil {
		p.logger.Debug("skip: record has no payload stream")
		return "", false
	}

	b, err := io.ReadAll(body)
	if err != nil {
		p.logger.Debug("skip: failed to read payload", "reason", err)
		return "", false
	}
	if len(b) == 0 {
		p.logger.Debug("skip: empty payload")
		return "", false
	}

	return strings.ToValidUTF8(string(b), "�"), true
}
