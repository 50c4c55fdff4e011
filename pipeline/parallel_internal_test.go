package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunks(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		total   int
		workers int
		want    []chunk
	}{
		{
			name:    "even split",
			total:   9,
			workers: 3,
			want:    []chunk{{id: 0, start: 0, count: 3}, {id: 1, start: 3, count: 3}, {id: 2, start: 6, count: 3}},
		},
		{
			name:    "remainder folds into the last chunk",
			total:   10,
			workers: 3,
			want:    []chunk{{id: 0, start: 0, count: 3}, {id: 1, start: 3, count: 3}, {id: 2, start: 6, count: 4}},
		},
		{
			name:    "single worker takes everything",
			total:   5,
			workers: 1,
			want:    []chunk{{id: 0, start: 0, count: 5}},
		},
		{
			name:    "more workers than records",
			total:   2,
			workers: 4,
			want:    []chunk{{id: 0, start: 0, count: 1}, {id: 1, start: 1, count: 1}},
		},
		{
			name:    "empty archive",
			total:   0,
			workers: 4,
			want:    nil,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chunks := splitChunks(tt.total, tt.workers)
			require.Equal(t, tt.want, chunks)

			covered := 0
			for _, c := range chunks {
				assert.Equal(t, covered, c.start, "chunks must be contiguous")
				covered += c.count
			}
			assert.Equal(t, tt.total, covered, "chunks must cover every record")
		})
	}
}
