package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dsullivan/warctext"
	"github.com/dsullivan/warctext/warc"
	"golang.org/x/sync/errgroup"
)

// Sharder fans the archive out over N independent single-threaded pipeline
// instances. The input is partitioned by response-record count ranges; each
// worker owns an exclusive output shard and a private stats accumulator, so
// nothing is shared until the final barrier, where shards are concatenated
// in order and stats merged.
//
// Shard concatenation only yields a valid file for the archive-text format;
// callers must not use the Sharder with the structured-list format.
type Sharder struct {
	Parser     *warctext.Parser
	Chain      *warctext.Chain
	Annotators []warctext.Annotator
	Logger     *slog.Logger
	Overwrite  bool
	Workers    int

	// NewWriter creates one writer per shard.
	NewWriter func() warctext.OutputWriter

	// OpenSource opens the input archive; it is called once for the
	// counting pass and once per worker. Defaults to warc.Open.
	OpenSource func(path string) (warctext.RecordSource, error)
}

// chunk is a contiguous range of response records assigned to one worker.
type chunk struct {
	id    int
	start int
	count int
}

// Run processes inputPath into outputPath using Workers parallel shards and
// returns the merged statistics.
func (s *Sharder) Run(ctx context.Context, inputPath, outputPath string) (*warctext.Stats, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	stats := warctext.NewStats()

	if err := ValidateDestination(outputPath, s.Overwrite); err != nil {
		return stats, err
	}
	if err := stats.Start(inputPath); err != nil {
		return stats, err
	}

	openSource := s.OpenSource
	if openSource == nil {
		openSource = func(path string) (warctext.RecordSource, error) {
			return warc.Open(path)
		}
	}

	total, err := s.countResponses(openSource, inputPath)
	if err != nil {
		stats.Finish()
		return stats, err
	}

	chunks := splitChunks(total, s.Workers)
	logger.Info("sharded run", "responses", total, "workers", s.Workers, "chunks", len(chunks))

	shardStats := make([]*warctext.Stats, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)
	for i, c := range chunks {
		g.Go(func() error {
			shard, err := s.runChunk(gctx, openSource, inputPath, shardPath(outputPath, c.id), c)
			shardStats[i] = shard
			return err
		})
	}

	runErr := g.Wait()

	for _, shard := range shardStats {
		if shard != nil {
			stats.Merge(shard)
		}
	}

	if runErr == nil {
		runErr = concatenateShards(outputPath, len(chunks))
	}
	removeShards(outputPath, len(chunks))

	stats.Finish()
	return stats, runErr
}

// countResponses makes the partitioning pass over the archive.
func (s *Sharder) countResponses(open func(string) (warctext.RecordSource, error), inputPath string) (int, error) {
	src, err := open(inputPath)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	total := 0
	for {
		raw, err := src.Next()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count records: %w", err)
		}
		if raw.Type == warctext.RecordTypeResponse {
			total++
		}
	}
}

// runChunk processes one contiguous response-record range into its own
// shard file with a private pipeline instance.
func (s *Sharder) runChunk(ctx context.Context, open func(string) (warctext.RecordSource, error), inputPath, shardPath string, c chunk) (*warctext.Stats, error) {
	stats := warctext.NewStats()

	writer := s.NewWriter()
	if err := writer.Configure(shardPath); err != nil {
		return stats, err
	}

	src, err := open(inputPath)
	if err != nil {
		writer.Close()
		return stats, err
	}

	streamErr := s.streamChunk(ctx, src, writer, stats, c)

	srcErr := src.Close()
	closeErr := writer.Close()

	if streamErr != nil {
		return stats, streamErr
	}
	if closeErr != nil {
		return stats, fmt.Errorf("failed to finalize shard %d: %w", c.id, closeErr)
	}
	if srcErr != nil {
		return stats, fmt.Errorf("failed to close input for shard %d: %w", c.id, srcErr)
	}
	return stats, nil
}

func (s *Sharder) streamChunk(ctx context.Context, src warctext.RecordSource, writer warctext.OutputWriter, stats *warctext.Stats, c chunk) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	seen := 0
	handled := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if handled >= c.count {
			return nil
		}

		raw, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read archive entry: %w", err)
		}
		if raw.Type != warctext.RecordTypeResponse {
			continue
		}
		if seen < c.start {
			seen++
			continue
		}
		seen++
		handled++
		stats.TrackEntry()

		rec := s.Parser.Parse(raw)
		if rec == nil {
			continue
		}
		stats.TrackParsed()
		stats.TrackBytes(rec.ContentLength)

		text, err := s.Chain.Extract(rec)
		if err != nil {
			if warctext.IsNoMatch(err) {
				stats.TrackSkipped()
			} else {
				stats.TrackFailed()
				logger.Warn("extraction failed", "uri", rec.TargetURI, "error", warctext.ErrorMessage(err))
			}
			continue
		}

		pr := warctext.NewProcessedRecord(rec, text)
		for _, a := range s.Annotators {
			if err := a.Annotate(pr); err != nil {
				logger.Warn("annotation failed", "uri", rec.TargetURI, "error", warctext.ErrorMessage(err))
			}
		}

		if err := writer.WriteRecord(pr); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		stats.TrackProcessed()
	}
}

// splitChunks partitions total records into contiguous ranges, one per
// worker, with the remainder folded into the last chunk.
func splitChunks(total, workers int) []chunk {
	if total == 0 || workers < 1 {
		return nil
	}

	per := total / workers
	if per == 0 {
		per = 1
	}

	var chunks []chunk
	for start := 0; start < total; start += per {
		count := per
		if len(chunks) == workers-1 || start+count > total {
			count = total - start
		}
		chunks = append(chunks, chunk{id: len(chunks), start: start, count: count})
		if start+count >= total {
			break
		}
	}
	return chunks
}

func shardPath(outputPath string, id int) string {
	return fmt.Sprintf("%s.shard-%d", outputPath, id)
}

// concatenateShards appends the shard files onto the final destination in
// chunk order.
func concatenateShards(outputPath string, n int) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return &warctext.Error{
			Code:    warctext.ECONFIG,
			Message: "output destination is not writable: " + outputPath,
			Err:     err,
		}
	}
	defer out.Close()

	for i := 0; i < n; i++ {
		in, err := os.Open(shardPath(outputPath, i))
		if err != nil {
			return fmt.Errorf("missing shard %d: %w", i, err)
		}
		_, copyErr := io.Copy(out, in)
		in.Close()
		if copyErr != nil {
			return fmt.Errorf("failed to combine shard %d: %w", i, copyErr)
		}
	}
	return nil
}

func removeShards(outputPath string, n int) {
	for i := 0; i < n; i++ {
		os.Remove(shardPath(outputPath, i))
	}
}
