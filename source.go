package warctext

// RecordSource iterates raw entries from a container archive in file order.
// It is the boundary to the low-level framing reader: compression and record
// framing are the implementation's concern, not the pipeline's.
type RecordSource interface {
	// Next returns the next raw entry, or io.EOF when the archive is
	// exhausted. The returned entry's Body is only valid until the next
	// call to Next.
	Next() (*RawRecord, error)

	// Close releases the underlying stream.
	Close() error
}
