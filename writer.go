package warctext

// OutputWriter serializes processed records to a destination, one record at
// a time. Implementations must stream: a WriteRecord call appends one unit
// without buffering the whole archive in memory.
type OutputWriter interface {
	// Configure validates the destination (the parent directory must exist
	// and be writable, ECONFIG otherwise) and opens it for streaming append.
	Configure(path string) error

	// WriteRecord appends one serialized record.
	WriteRecord(rec *ProcessedRecord) error

	// Close finalizes the output. It must leave a syntactically complete,
	// parseable file on every exit path, including early termination.
	Close() error
}
