package warctext_test

import (
	"testing"
	"time"

	"github.com/dsullivan/warctext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	t.Parallel()

	var h warctext.Header
	h.Add("Content-Type", "text/html")
	h.Add("Server", "nginx")
	h.Add("X-Custom", "first")
	h.Add("X-Custom", "second")

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "text/html", h.Get("content-type"))
		assert.Equal(t, "nginx", h.Get("SERVER"))
		assert.Empty(t, h.Get("missing"))
	})

	t.Run("first value wins for duplicates", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "first", h.Get("X-Custom"))
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		t.Parallel()

		names := make([]string, 0, len(h))
		for _, f := range h {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"Content-Type", "Server", "X-Custom", "X-Custom"}, names)
	})

	t.Run("has", func(t *testing.T) {
		t.Parallel()

		assert.True(t, h.Has("server"))
		assert.False(t, h.Has("location"))
	})
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	t.Run("accepts UTC designator", func(t *testing.T) {
		t.Parallel()

		ts, err := warctext.ParseTimestamp("2024-12-31T22:42:28Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 12, 31, 22, 42, 28, 0, time.UTC), ts)
	})

	t.Run("normalizes explicit offsets to UTC", func(t *testing.T) {
		t.Parallel()

		ts, err := warctext.ParseTimestamp("2024-12-31T23:42:28+01:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 12, 31, 22, 42, 28, 0, time.UTC), ts)
	})

	t.Run("rejects malformed timestamps", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"", "2024-12-31", "31/12/2024 22:42", "2024-12-31 22:42:28"} {
			_, err := warctext.ParseTimestamp(input)
			require.Error(t, err, "input %q", input)
			assert.Equal(t, warctext.EINVALID, warctext.ErrorCode(err))
		}
	})
}

func TestNewProcessedRecord(t *testing.T) {
	t.Parallel()

	rec := &warctext.Record{Content: "<p>hi</p>", ContentLength: 9}
	pr := warctext.NewProcessedRecord(rec, "hi")

	assert.Same(t, rec, pr.Record)
	assert.Equal(t, "hi", pr.ExtractedText)
	require.NotNil(t, pr.Metadata)
	assert.Empty(t, pr.Metadata)
}
