package mock

import (
	"io"

	"github.com/dsullivan/warctext"
)

var _ warctext.RecordSource = (*RecordSource)(nil)

// RecordSource is a mock implementation of warctext.RecordSource. When
// NextFn is nil it yields Records in order and then io.EOF.
type RecordSource struct {
	NextFn  func() (*warctext.RawRecord, error)
	CloseFn func() error

	Records []*warctext.RawRecord
	pos     int

	CloseInvoked bool
}

func (s *RecordSource) Next() (*warctext.RawRecord, error) {
	if s.NextFn != nil {
		return s.NextFn()
	}
	if s.pos >= len(s.Records) {
		return nil, io.EOF
	}
	rec := s.Records[s.pos]
	s.pos++
	return rec, nil
}

func (s *RecordSource) Close() error {
	s.CloseInvoked = true
	if s.CloseFn != nil {
		return s.CloseFn()
	}
	return nil
}
