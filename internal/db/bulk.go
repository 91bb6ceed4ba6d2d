package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultFlushThreshold caps how many operations accumulate before the buffer
// flushes. Document stores commonly limit batched writes (Firestore caps a
// batch at 500 ops); staying under a fixed threshold keeps large sweeps safe
// on any backend.
const DefaultFlushThreshold = 500

// BulkBuffer accumulates write models for one collection and sends them in
// chunks of at most the flush threshold. Not safe for concurrent use. The
// caller controls transactionality through the context it passes in (a
// session context keeps all flushes inside one transaction).
type BulkBuffer struct {
	coll      *mongo.Collection
	threshold int
	pending   []mongo.WriteModel
	modified  int64
	matched   int64
}

// NewBulkBuffer creates a buffer for the collection. A threshold <= 0 falls
// back to DefaultFlushThreshold.
func NewBulkBuffer(coll *mongo.Collection, threshold int) *BulkBuffer {
	if threshold <= 0 {
		threshold = DefaultFlushThreshold
	}
	return &BulkBuffer{
		coll:      coll,
		threshold: threshold,
	}
}

// Add queues one write, flushing first when the buffer is full.
func (b *BulkBuffer) Add(ctx context.Context, model mongo.WriteModel) error {
	if len(b.pending) >= b.threshold {
		if err := b.Flush(ctx); err != nil {
			return err
		}
	}
	b.pending = append(b.pending, model)
	return nil
}

// Flush sends all queued writes. A no-op on an empty buffer.
func (b *BulkBuffer) Flush(ctx context.Context) error {
	if len(b.pending) == 0 {
		return nil
	}
	result, err := b.coll.BulkWrite(ctx, b.pending)
	if err != nil {
		return fmt.Errorf("bulk write of %d ops failed: %w", len(b.pending), err)
	}
	b.modified += result.ModifiedCount
	b.matched += result.MatchedCount
	b.pending = b.pending[:0]
	return nil
}

// Modified returns the total number of documents modified across flushes.
func (b *BulkBuffer) Modified() int64 { return b.modified }

// Matched returns the total number of documents matched across flushes.
func (b *BulkBuffer) Matched() int64 { return b.matched }
