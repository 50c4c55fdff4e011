package main

import (
	"log/slog"
	"testing"

	"github.com/dsullivan/warctext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestBuildChain(t *testing.T) {
	t.Parallel()

	t.Run("empty processor list uses the default chain", func(t *testing.T) {
		t.Parallel()

		chain, err := buildChain(nil, false, discard())
		require.NoError(t, err)
		assert.Equal(t, len(defaultProcessors), chain.Len())
	})

	t.Run("every registered processor constructs", func(t *testing.T) {
		t.Parallel()

		names := processorNames()
		chain, err := buildChain(names, false, discard())
		require.NoError(t, err)
		assert.Equal(t, len(names), chain.Len())
	})

	t.Run("unknown processor is a configuration error", func(t *testing.T) {
		t.Parallel()

		_, err := buildChain([]string{"trafilatura", "lynx"}, false, discard())
		require.Error(t, err)
		assert.Equal(t, warctext.ECONFIG, warctext.ErrorCode(err))
		assert.Contains(t, warctext.ErrorMessage(err), "lynx")
	})

	t.Run("default processors are all registered", func(t *testing.T) {
		t.Parallel()

		for _, name := range defaultProcessors {
			assert.Contains(t, extractorRegistry, name)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validate(&CLI{Workers: 1, Format: "text"}))
	assert.NoError(t, validate(&CLI{Workers: 8, Format: "text"}))
	assert.NoError(t, validate(&CLI{Workers: 1, Format: "structured"}))

	err := validate(&CLI{Workers: 0, Format: "text"})
	require.Error(t, err)
	assert.Equal(t, warctext.ECONFIG, warctext.ErrorCode(err))

	err = validate(&CLI{Workers: 2, Format: "structured"})
	require.Error(t, err)
	assert.Equal(t, warctext.ECONFIG, warctext.ErrorCode(err))
}
