// Package storeerr specifically handles document store driver errors.
//
// It classifies errors returned by the MongoDB driver and converts them
// into application errors: a missing document becomes a Not Found error,
// everything else becomes a store error that hides driver details from
// clients while keeping them for the logs.
package storeerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code is a driver-independent category of store failure.
type Code string

const (
	NoDocuments  Code = "no_documents"
	DuplicateKey Code = "duplicate_key"
	Timeout      Code = "timeout"
	Network      Code = "network"
	Other        Code = "other"
)

// Error is a classified store error.
type Error struct {
	Code       Code
	Op         string
	Collection string
	// Index and Field are set for DuplicateKey errors when they can be
	// recovered from the driver message.
	Index string
	Field string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.driverErr)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// Wrap classifies err as the result of op on collection.
// It returns nil for a nil err and err itself when already classified.
func Wrap(err error, collection, op string) error {
	if err == nil {
		return nil
	}

	var storeErr *Error
	if errors.As(err, &storeErr) {
		return err
	}

	e := &Error{
		Code:       Classify(err),
		Op:         op,
		Collection: collection,
		driverErr:  errors.WithStack(err),
	}

	if e.Code == DuplicateKey {
		e.Index = extractIndexName(err.Error())
		e.Field = extractColumnForUniqueViolation(e.Index)
	}

	return e
}

// ErrCode reports the Code of err, or Other when err was never wrapped.
func ErrCode(err error) Code {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return Other
}
