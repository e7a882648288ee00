package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound        = errors.New("domain: not found")
	ErrUnauthorized    = errors.New("domain: unauthorized")
	ErrInvalidHub      = errors.New("domain: invalid hub")
	ErrInvalidListType = errors.New("domain: invalid list type")
	ErrValidation      = errors.New("domain: validation failed")
)

// StoreError is returned by RecordStore implementations when the backing store
// reports a failure. Message is the store's own message and is surfaced to
// callers verbatim.
type StoreError struct {
	Op      string // "query", "insert", "update"
	Table   string
	Message string
	Code    string // SQLSTATE or backend error code, may be empty
	Err     error
}

func (e *StoreError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("store %s %s: %s (%s)", e.Op, e.Table, e.Message, e.Code)
	}
	return fmt.Sprintf("store %s %s: %s", e.Op, e.Table, e.Message)
}

func (e *StoreError) Unwrap() error { return e.Err }

// StoreMessage extracts the message a store reported for err. It returns the
// empty string when err carries no store message.
func StoreMessage(err error) string {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
