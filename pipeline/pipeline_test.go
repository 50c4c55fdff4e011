package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsullivan/warctext"
	"github.com/dsullivan/warctext/mock"
	"github.com/dsullivan/warctext/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawResponse builds a parseable response entry with the given content type
// and payload.
func rawResponse(n int, contentType, body string) *warctext.RawRecord {
	raw := &warctext.RawRecord{
		Type:       warctext.RecordTypeResponse,
		HTTPStatus: 200,
		Body:       strings.NewReader(body),
	}
	raw.Headers.Add("WARC-Record-ID", fmt.Sprintf("<urn:uuid:record-%d>", n))
	raw.Headers.Add("WARC-Target-URI", fmt.Sprintf("https://example.com/page/%d", n))
	raw.Headers.Add("WARC-Date", "2024-12-31T22:42:28Z")
	raw.HTTPHeaders.Add("Content-Type", contentType)
	return raw
}

func rawNonResponse(typ string) *warctext.RawRecord {
	raw := &warctext.RawRecord{Type: typ, Body: strings.NewReader("ignored")}
	raw.Headers.Add("WARC-Record-ID", "<urn:uuid:other>")
	return raw
}

// htmlOnlyExtractor handles text/html and echoes the payload.
func htmlOnlyExtractor() *mock.TextExtractor {
	return &mock.TextExtractor{
		CanHandleFn: func(ct warctext.ContentType) bool { return ct.IsHTML() },
		ExtractFn: func(input warctext.ExtractionInput) (string, error) {
			return "extracted: " + input.Content, nil
		},
	}
}

// tempInput creates a dummy input file so stats can record its size.
func tempInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.warc")
	require.NoError(t, os.WriteFile(path, []byte("WARC/1.0\r\n"), 0o644))
	return path
}

func newPipeline(src warctext.RecordSource, w warctext.OutputWriter) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Parser: warctext.NewParser(nil),
		Chain:  warctext.NewChain(htmlOnlyExtractor()),
		Writer: w,
		OpenSource: func(string) (warctext.RecordSource, error) {
			return src, nil
		},
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("counts by outcome across mixed entries", func(t *testing.T) {
		t.Parallel()

		// 4 HTML responses, 2 non-HTML responses, 4 non-response entries.
		src := &mock.RecordSource{Records: []*warctext.RawRecord{
			rawResponse(1, "text/html", "<p>one</p>"),
			rawNonResponse("warcinfo"),
			rawResponse(2, "text/html", "<p>two</p>"),
			rawNonResponse("request"),
			rawResponse(3, "image/png", "PNGDATA"),
			rawResponse(4, "text/html", "<p>three</p>"),
			rawNonResponse("request"),
			rawResponse(5, "application/pdf", "PDFDATA"),
			rawResponse(6, "text/html", "<p>four</p>"),
			rawNonResponse("metadata"),
		}}
		w := &mock.OutputWriter{}

		stats, err := newPipeline(src, w).Run(context.Background(), tempInput(t), filepath.Join(t.TempDir(), "out.txt"))
		require.NoError(t, err)

		assert.Equal(t, 10, stats.EntriesSeen)
		assert.Equal(t, 6, stats.Parsed)
		assert.Equal(t, 4, stats.Processed)
		assert.Equal(t, 2, stats.Skipped)
		assert.Equal(t, 0, stats.Failed)
		assert.Equal(t, stats.Parsed, stats.Processed+stats.Skipped+stats.Failed)
		assert.Len(t, w.Written, 4)
		assert.True(t, w.CloseInvoked)
		assert.True(t, src.CloseInvoked)
	})

	t.Run("output order matches input order", func(t *testing.T) {
		t.Parallel()

		src := &mock.RecordSource{Records: []*warctext.RawRecord{
			rawResponse(1, "text/html", "first"),
			rawResponse(2, "text/html", "second"),
			rawResponse(3, "text/html", "third"),
		}}
		w := &mock.OutputWriter{}

		_, err := newPipeline(src, w).Run(context.Background(), tempInput(t), filepath.Join(t.TempDir(), "out.txt"))
		require.NoError(t, err)

		require.Len(t, w.Written, 3)
		assert.Equal(t, "extracted: first", w.Written[0].ExtractedText)
		assert.Equal(t, "extracted: second", w.Written[1].ExtractedText)
		assert.Equal(t, "extracted: third", w.Written[2].ExtractedText)
	})

	t.Run("tracks payload bytes even when extraction fails", func(t *testing.T) {
		t.Parallel()

		failing := &mock.TextExtractor{
			CanHandleFn: func(warctext.ContentType) bool { return true },
			ExtractFn: func(warctext.ExtractionInput) (string, error) {
				return "", warctext.Errorf(warctext.EEXTRACT, "broken")
			},
		}
		src := &mock.RecordSource{Records: []*warctext.RawRecord{
			rawResponse(1, "text/html", "0123456789"),
		}}
		w := &mock.OutputWriter{}

		p := newPipeline(src, w)
		p.Chain = warctext.NewChain(failing)

		stats, err := p.Run(context.Background(), tempInput(t), filepath.Join(t.TempDir(), "out.txt"))
		require.NoError(t, err, "a failed record never aborts the run")

		assert.Equal(t, 1, stats.Failed)
		assert.Equal(t, 0, stats.Processed)
		assert.Equal(t, int64(10), stats.BytesProcessed)
		assert.Empty(t, w.Written)
	})

	t.Run("existing output fails before any input is touched", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "out.txt")
		require.NoError(t, os.WriteFile(out, []byte("old"), 0o644))

		opened := false
		p := newPipeline(&mock.RecordSource{}, &mock.OutputWriter{})
		p.OpenSource = func(string) (warctext.RecordSource, error) {
			opened = true
			return &mock.RecordSource{}, nil
		}

		_, err := p.Run(context.Background(), tempInput(t), out)
		require.Error(t, err)
		assert.Equal(t, warctext.ECONFIG, warctext.ErrorCode(err))
		assert.False(t, opened, "input must not be opened when configuration fails")
	})

	t.Run("overwrite replaces an existing output", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "out.txt")
		require.NoError(t, os.WriteFile(out, []byte("old"), 0o644))

		p := newPipeline(&mock.RecordSource{}, &mock.OutputWriter{})
		p.Overwrite = true

		_, err := p.Run(context.Background(), tempInput(t), out)
		require.NoError(t, err)
	})

	t.Run("finalizes the writer on a mid-run fault", func(t *testing.T) {
		t.Parallel()

		src := &mock.RecordSource{NextFn: func() (*warctext.RawRecord, error) {
			return nil, errors.New("disk read error")
		}}
		w := &mock.OutputWriter{}

		stats, err := newPipeline(src, w).Run(context.Background(), tempInput(t), filepath.Join(t.TempDir(), "out.txt"))
		require.Error(t, err)
		assert.True(t, w.CloseInvoked, "writer must be finalized on fatal faults")
		assert.NotNil(t, stats)
	})

	t.Run("write fault aborts the run", func(t *testing.T) {
		t.Parallel()

		src := &mock.RecordSource{Records: []*warctext.RawRecord{
			rawResponse(1, "text/html", "<p>x</p>"),
			rawResponse(2, "text/html", "<p>y</p>"),
		}}
		w := &mock.OutputWriter{
			WriteRecordFn: func(*warctext.ProcessedRecord) error {
				return errors.New("disk full")
			},
		}

		stats, err := newPipeline(src, w).Run(context.Background(), tempInput(t), filepath.Join(t.TempDir(), "out.txt"))
		require.Error(t, err)
		assert.Equal(t, 0, stats.Processed)
		assert.Equal(t, 1, stats.Parsed, "stats reflect progress up to the fault")
	})

	t.Run("runs annotators on processed records", func(t *testing.T) {
		t.Parallel()

		src := &mock.RecordSource{Records: []*warctext.RawRecord{
			rawResponse(1, "text/html", "<p>x</p>"),
		}}
		w := &mock.OutputWriter{}

		p := newPipeline(src, w)
		p.Annotators = []warctext.Annotator{&mock.Annotator{
			AnnotateFn: func(rec *warctext.ProcessedRecord) error {
				rec.Metadata["content-language"] = "eng"
				return nil
			},
		}}

		_, err := p.Run(context.Background(), tempInput(t), filepath.Join(t.TempDir(), "out.txt"))
		require.NoError(t, err)

		require.Len(t, w.Written, 1)
		assert.Equal(t, "eng", w.Written[0].Metadata["content-language"])
	})

	t.Run("annotator failure does not fail the record", func(t *testing.T) {
		t.Parallel()

		src := &mock.RecordSource{Records: []*warctext.RawRecord{
			rawResponse(1, "text/html", "<p>x</p>"),
		}}
		w := &mock.OutputWriter{}

		p := newPipeline(src, w)
		p.Annotators = []warctext.Annotator{&mock.Annotator{
			AnnotateFn: func(*warctext.ProcessedRecord) error {
				return warctext.Errorf(warctext.EINTERNAL, "detector unavailable")
			},
		}}

		stats, err := p.Run(context.Background(), tempInput(t), filepath.Join(t.TempDir(), "out.txt"))
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Processed)
	})

	t.Run("cancellation aborts the run", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		src := &mock.RecordSource{Records: []*warctext.RawRecord{
			rawResponse(1, "text/html", "<p>x</p>"),
		}}
		w := &mock.OutputWriter{}

		_, err := newPipeline(src, w).Run(ctx, tempInput(t), filepath.Join(t.TempDir(), "out.txt"))
		require.Error(t, err)
		assert.True(t, w.CloseInvoked)
	})

	t.Run("missing input fails after output is configured", func(t *testing.T) {
		t.Parallel()

		w := &mock.OutputWriter{}
		p := newPipeline(&mock.RecordSource{}, w)

		_, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "missing.warc"), filepath.Join(t.TempDir(), "out.txt"))
		require.Error(t, err)
		assert.Equal(t, warctext.ECONFIG, warctext.ErrorCode(err))
		assert.True(t, w.CloseInvoked, "configured output must still be finalized")
	})
}
