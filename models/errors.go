package models

import (
	"errors"
	"fmt"
)

// ErrDraftLocked is returned when a working bill that shows a past bill is mutated.
var ErrDraftLocked = errors.New("viewing a past bill; start a new bill to edit")

// ValidationError reports malformed or missing input. It is always raised
// before anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// DuplicateConNoError reports a consignment number already present in the draft.
type DuplicateConNoError struct {
	ConNo string
	Index int
}

func (e *DuplicateConNoError) Error() string {
	return fmt.Sprintf("consignment number %q already exists in this bill (row %d)", e.ConNo, e.Index+1)
}

// IndexError reports a line position outside the draft.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("item index %d out of range [0,%d)", e.Index, e.Len)
}

// NotFoundError reports a committed record that does not exist.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return e.What + " not found"
}

// StorageError wraps a failed durable read or write.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// WrapStorage returns nil for a nil err, an existing *StorageError unchanged,
// and otherwise wraps err for op.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
