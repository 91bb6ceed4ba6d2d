package db

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

// transientTxError builds an error that IsTransientTxError recognizes.
func transientTxError() error {
	return mongo.CommandError{
		Code:    112, // WriteConflict
		Message: "WriteConflict error: this operation conflicted with another operation",
		Labels:  []string{"TransientTransactionError"},
	}
}

func duplicateKeyError(key string) error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: "E11000 duplicate key error dup key: { : \"" + key + "\" }",
	}}}
}

func TestWithRetries_SuccessfulFirstAttempt(t *testing.T) {
	var opCalled int
	operation := func() error {
		opCalled++
		return nil
	}

	if err := WithRetries(operation, 3, IsTransientTxError); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if opCalled != 1 {
		t.Errorf("Expected operation to be called 1 time, got %d", opCalled)
	}
}

func TestWithRetries_FailureNotRetryable(t *testing.T) {
	var opCalled int
	expectedErr := errors.New("some other error")
	operation := func() error {
		opCalled++
		return expectedErr
	}

	err := WithRetries(operation, 3, IsTransientTxError)
	if !errors.Is(err, expectedErr) {
		t.Errorf("Expected error %v, got %v", expectedErr, err)
	}
	if opCalled != 1 {
		t.Errorf("Expected operation to be called 1 time, got %d", opCalled)
	}
}

func TestWithRetries_ExhaustRetries(t *testing.T) {
	var opCalled int
	operation := func() error {
		opCalled++
		return transientTxError()
	}

	maxRetries := 3
	err := WithRetries(operation, maxRetries, IsTransientTxError)
	if err == nil {
		t.Fatal("Expected a transient transaction error, got nil")
	}
	if !IsTransientTxError(err) {
		t.Errorf("Expected a transient transaction error, got %T: %v", err, err)
	}

	expectedOpCalls := maxRetries + 1
	if opCalled != expectedOpCalls {
		t.Errorf("Expected operation to be called %d times, got %d", expectedOpCalls, opCalled)
	}
}

func TestWithRetries_TransientErrorResolves(t *testing.T) {
	var opCalled int
	operation := func() error {
		opCalled++
		if opCalled < 3 {
			return transientTxError()
		}
		return nil
	}

	if err := WithRetries(operation, 3, IsTransientTxError); err != nil {
		t.Errorf("Expected no error after retries, got %v", err)
	}
	if opCalled != 3 {
		t.Errorf("Expected operation to be called 3 times, got %d", opCalled)
	}
}

func TestIsTransientTxError(t *testing.T) {
	if IsTransientTxError(nil) {
		t.Error("nil must not be transient")
	}
	if IsTransientTxError(errors.New("boom")) {
		t.Error("plain error must not be transient")
	}
	if !IsTransientTxError(transientTxError()) {
		t.Error("labeled command error must be transient")
	}
	if IsTransientTxError(mongo.CommandError{Code: 11601, Message: "interrupted"}) {
		t.Error("unlabeled command error must not be transient")
	}
}

func TestIsMongoDuplicateKeyError(t *testing.T) {
	if !IsMongoDuplicateKeyError(duplicateKeyError("X")) {
		t.Error("code 11000 write error must be a duplicate key error")
	}
	if IsMongoDuplicateKeyError(errors.New("boom")) {
		t.Error("plain error must not be a duplicate key error")
	}
	other := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 121, Message: "validation"}}}
	if IsMongoDuplicateKeyError(other) {
		t.Error("non-11000 write error must not be a duplicate key error")
	}
}
