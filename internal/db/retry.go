package db

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Operation is a function that performs an action and returns an error if it fails.
type Operation func() error

// Retryable is a predicate deciding whether a failed operation is worth
// attempting again.
type Retryable func(err error) bool

const DefaultMaxRetries = 3

// Try executes an operation, retrying transient transaction errors with
// default settings.
func Try(op Operation) error {
	return WithRetries(op, DefaultMaxRetries, IsTransientTxError)
}

// WithRetries executes an operation up to maxRetries+1 times, retrying only
// when the predicate accepts the error. A short incremental backoff separates
// attempts.
func WithRetries(op Operation, maxRetries int, retryable Retryable) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		if !retryable(err) {
			return err
		}
		time.Sleep(time.Duration(50*(attempt+1)) * time.Millisecond)
	}
	return err
}

// IsTransientTxError reports whether a MongoDB error carries the
// TransientTransactionError label, meaning the whole transaction can safely
// be retried from the start.
func IsTransientTxError(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorLabel("TransientTransactionError")
	}
	return false
}

// IsMongoDuplicateKeyError checks if an error from MongoDB is a duplicate key
// error (code 11000). New documents get randomly generated 6-byte IDs, so an
// insert can collide and be retried with a fresh ID.
func IsMongoDuplicateKeyError(err error) bool {
	var e mongo.WriteException
	if errors.As(err, &e) {
		for _, we := range e.WriteErrors {
			if we.Code == 11000 {
				return true
			}
		}
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, writeError := range bwe.WriteErrors {
			if writeError.Code == 11000 {
				return true
			}
		}
	}
	return false
}
