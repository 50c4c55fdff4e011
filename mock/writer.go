package mock

import "github.com/dsullivan/warctext"

var _ warctext.OutputWriter = (*OutputWriter)(nil)

// OutputWriter is a mock implementation of warctext.OutputWriter.
type OutputWriter struct {
	ConfigureFn   func(path string) error
	WriteRecordFn func(rec *warctext.ProcessedRecord) error
	CloseFn       func() error

	// Written collects records when WriteRecordFn is nil.
	Written []*warctext.ProcessedRecord

	CloseInvoked bool
}

func (w *OutputWriter) Configure(path string) error {
	if w.ConfigureFn != nil {
		return w.ConfigureFn(path)
	}
	return nil
}

func (w *OutputWriter) WriteRecord(rec *warctext.ProcessedRecord) error {
	if w.WriteRecordFn != nil {
		return w.WriteRecordFn(rec)
	}
	w.Written = append(w.Written, rec)
	return nil
}

func (w *OutputWriter) Close() error {
	w.CloseInvoked = true
	if w.CloseFn != nil {
		return w.CloseFn()
	}
	return nil
}
