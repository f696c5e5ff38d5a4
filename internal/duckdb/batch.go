package duckdb

import "github.com/inodb/clinvar-txt/internal/clinvar"

// DefaultBatchSize is the number of records buffered before an append.
const DefaultBatchSize = 50000

// Batcher buffers records and writes them to a Store in batches.
type Batcher struct {
	store   *Store
	size    int
	buf     []clinvar.Record
	written int
}

// NewBatcher creates a batcher that appends every size records.
// A size of zero or less uses DefaultBatchSize.
func (s *Store) NewBatcher(size int) *Batcher {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return &Batcher{store: s, size: size, buf: make([]clinvar.Record, 0, size)}
}

// Add buffers a record, writing the batch once it is full.
func (b *Batcher) Add(r clinvar.Record) error {
	b.buf = append(b.buf, r)
	if len(b.buf) >= b.size {
		return b.Flush()
	}
	return nil
}

// Flush writes any buffered records.
func (b *Batcher) Flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	if err := b.store.WriteRecords(b.buf); err != nil {
		return err
	}
	b.written += len(b.buf)
	b.buf = b.buf[:0]
	return nil
}

// Written returns the number of records written so far.
func (b *Batcher) Written() int {
	return b.written
}
