// Package pipeline drives the parse, extract, write sequence over a WARC
// archive. The core pipeline is strictly sequential: each entry is fully
// handled before the next begins, so output order always matches input
// order. An optional shared-nothing fan-out over record ranges lives in
// this package as well.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dsullivan/warctext"
	"github.com/dsullivan/warctext/warc"
)

// Pipeline processes one archive into one output file. Parser, Chain, and
// Writer are required; the rest is optional.
type Pipeline struct {
	Parser     *warctext.Parser
	Chain      *warctext.Chain
	Writer     warctext.OutputWriter
	Annotators []warctext.Annotator
	Logger     *slog.Logger

	// Overwrite permits replacing an existing output file. Without it a
	// pre-existing destination fails the run before any input is touched.
	Overwrite bool

	// OpenSource opens the input archive. Defaults to warc.Open.
	OpenSource func(path string) (warctext.RecordSource, error)
}

// Run processes inputPath into outputPath and returns the run statistics.
// The stats returned alongside a fatal error reflect progress up to the
// fault; the writer is finalized and the stats clock stopped on every exit
// path.
func (p *Pipeline) Run(ctx context.Context, inputPath, outputPath string) (*warctext.Stats, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	stats := warctext.NewStats()

	// Configuring: the destination is validated before any input is read.
	if err := ValidateDestination(outputPath, p.Overwrite); err != nil {
		return stats, err
	}
	if err := p.Writer.Configure(outputPath); err != nil {
		return stats, err
	}

	// The output is finalized on every exit path past this point; an
	// unfinalized structured-list output would be syntactically invalid.
	if err := stats.Start(inputPath); err != nil {
		closeErr := p.Writer.Close()
		stats.Finish()
		if closeErr != nil {
			logger.Warn("failed to finalize output", "error", closeErr)
		}
		return stats, err
	}

	openSource := p.OpenSource
	if openSource == nil {
		openSource = func(path string) (warctext.RecordSource, error) {
			return warc.Open(path)
		}
	}

	src, err := openSource(inputPath)
	if err != nil {
		closeErr := p.Writer.Close()
		stats.Finish()
		if closeErr != nil {
			logger.Warn("failed to finalize output", "error", closeErr)
		}
		return stats, err
	}

	// Streaming.
	streamErr := p.stream(ctx, src, stats, logger)

	// Finalizing.
	srcErr := src.Close()
	closeErr := p.Writer.Close()
	stats.Finish()

	if streamErr != nil {
		return stats, streamErr
	}
	if closeErr != nil {
		return stats, fmt.Errorf("failed to finalize output: %w", closeErr)
	}
	if srcErr != nil {
		return stats, fmt.Errorf("failed to close input: %w", srcErr)
	}

	logger.Info("run complete",
		"entries", stats.EntriesSeen,
		"parsed", stats.Parsed,
		"processed", stats.Processed,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return stats, nil
}

// stream iterates entries in file order. A per-record anomaly is counted and
// skipped; only source or writer faults abort the run.
func (p *Pipeline) stream(ctx context.Context, src warctext.RecordSource, stats *warctext.Stats, logger *slog.Logger) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read archive entry: %w", err)
		}
		stats.TrackEntry()

		rec := p.Parser.Parse(raw)
		if rec == nil {
			continue
		}
		stats.TrackParsed()
		// Payload bytes count even when extraction fails below.
		stats.TrackBytes(rec.ContentLength)

		text, err := p.Chain.Extract(rec)
		if err != nil {
			if warctext.IsNoMatch(err) {
				stats.TrackSkipped()
				logger.Debug("no extractor matched",
					"uri", rec.TargetURI,
					"content_type", rec.ContentType.String(),
				)
			} else {
				stats.TrackFailed()
				logger.Warn("extraction failed",
					"uri", rec.TargetURI,
					"error", warctext.ErrorMessage(err),
				)
			}
			continue
		}

		pr := warctext.NewProcessedRecord(rec, text)
		for _, a := range p.Annotators {
			if err := a.Annotate(pr); err != nil {
				logger.Warn("annotation failed",
					"uri", rec.TargetURI,
					"error", warctext.ErrorMessage(err),
				)
			}
		}

		if err := p.Writer.WriteRecord(pr); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		stats.TrackProcessed()
	}
}

// ValidateDestination enforces the pre-existing-file policy and checks that
// the parent directory exists.
func ValidateDestination(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return warctext.Errorf(warctext.ECONFIG, "output file already exists: %s (use overwrite to replace)", path)
		}
	}

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return warctext.Errorf(warctext.ECONFIG, "output directory does not exist: %s", dir)
	}
	return nil
}
