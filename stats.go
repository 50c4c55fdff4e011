package warctext

import (
	"fmt"
	"os"
	"time"
)

// Stats accumulates counters for one pipeline run.
//
// Counters are monotonic for the duration of a run. A Stats value is not
// internally synchronized: each run (or each parallel shard) owns its own
// accumulator, and shard accumulators are combined with Merge after the
// final barrier.
type Stats struct {
	EntriesSeen    int
	Parsed         int
	Processed      int
	Skipped        int
	Failed         int
	BytesProcessed int64
	InputSize      int64

	startTime time.Time
	endTime   time.Time
}

// NewStats returns a zeroed accumulator.
func NewStats() *Stats {
	return &Stats{}
}

// Start records the run start time and the input file size.
func (s *Stats) Start(inputPath string) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return Errorf(ECONFIG, "input file not found: %s", inputPath)
	}
	if info.Size() == 0 {
		return Errorf(ECONFIG, "input file is empty: %s", inputPath)
	}

	s.startTime = time.Now()
	s.InputSize = info.Size()
	return nil
}

// Finish stops the clock. Throughput metrics are undefined before Finish.
func (s *Stats) Finish() {
	s.endTime = time.Now()
}

// Reset returns all counters and timestamps to zero.
func (s *Stats) Reset() {
	*s = Stats{}
}

// TrackEntry counts one raw entry seen in the input.
func (s *Stats) TrackEntry() { s.EntriesSeen++ }

// TrackParsed counts one entry that produced a Record.
func (s *Stats) TrackParsed() { s.Parsed++ }

// TrackProcessed counts one record that was extracted and written.
func (s *Stats) TrackProcessed() { s.Processed++ }

// TrackSkipped counts one parsed record that no extractor matched.
func (s *Stats) TrackSkipped() { s.Skipped++ }

// TrackFailed counts one parsed record whose matching extractors all failed.
func (s *Stats) TrackFailed() { s.Failed++ }

// TrackBytes counts payload bytes of a parsed record. Bytes are tracked even
// when a later stage fails.
func (s *Stats) TrackBytes(n int) { s.BytesProcessed += int64(n) }

// Merge folds another accumulator into s. The merged elapsed window spans
// the earliest start to the latest finish.
func (s *Stats) Merge(other *Stats) {
	s.EntriesSeen += other.EntriesSeen
	s.Parsed += other.Parsed
	s.Processed += other.Processed
	s.Skipped += other.Skipped
	s.Failed += other.Failed
	s.BytesProcessed += other.BytesProcessed

	if s.startTime.IsZero() || (!other.startTime.IsZero() && other.startTime.Before(s.startTime)) {
		s.startTime = other.startTime
	}
	if other.endTime.After(s.endTime) {
		s.endTime = other.endTime
	}
}

// Elapsed returns the wall time between Start and Finish, or zero if the
// run has not finished.
func (s *Stats) Elapsed() time.Duration {
	if s.startTime.IsZero() || s.endTime.IsZero() {
		return 0
	}
	return s.endTime.Sub(s.startTime)
}

// RecordsPerSec returns processing throughput in records per second, or 0
// if the run has not finished.
func (s *Stats) RecordsPerSec() float64 {
	elapsed := s.Elapsed().Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(s.Processed) / elapsed
}

// BytesPerSec returns input throughput in bytes per second, or 0 if the run
// has not finished.
func (s *Stats) BytesPerSec() float64 {
	elapsed := s.Elapsed().Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(s.InputSize) / elapsed
}

// Summary returns a human-readable summary block for the end of a run.
func (s *Stats) Summary() string {
	if s.Elapsed() == 0 {
		return "Processing not completed"
	}

	mb := float64(s.InputSize) / (1024 * 1024)
	return fmt.Sprintf(
		"\nProcessing Summary:\n"+
			"  Time: %s\n"+
			"  Input Size: %.1f MB\n"+
			"  Speed: %.1f MB/sec\n"+
			"\nRecord Statistics:\n"+
			"  Total Records: %d\n"+
			"  Successfully Processed: %d\n"+
			"  Skipped: %d\n"+
			"  Failed: %d\n"+
			"  Processing Rate: %.1f records/sec\n",
		s.Elapsed().Truncate(time.Second),
		mb,
		s.BytesPerSec()/(1024*1024),
		s.Parsed,
		s.Processed,
		s.Skipped,
		s.Failed,
		s.RecordsPerSec(),
	)
}
