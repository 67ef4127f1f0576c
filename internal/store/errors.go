package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes store failures.
type ErrorCode string

const (
	// ErrCodeDuplicateKey indicates an insert collided with an existing
	// primary or unique key.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"

	// ErrCodeNotFound indicates a backup or restore path does not
	// exist. Entity lookup misses are not errors; they return absent
	// values.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeIOFailure indicates a file copy failed during backup or
	// restore.
	ErrCodeIOFailure ErrorCode = "IO_FAILURE"

	// ErrCodeUnexpected indicates any other fault caught at the
	// operation boundary.
	ErrCodeUnexpected ErrorCode = "UNEXPECTED"
)

// Error is the typed failure returned by every public Store operation.
// Callers branch on Code (or the Is* helpers) rather than on error
// strings.
type Error struct {
	// Code identifies the failure class.
	Code ErrorCode

	// Op names the operation that failed, e.g. "add student".
	Op string

	// Message is a short human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsDuplicate reports whether err is a duplicate-key failure.
// Uses errors.As to handle wrapped errors.
func IsDuplicate(err error) bool {
	return hasCode(err, ErrCodeDuplicateKey)
}

// IsNotFound reports whether err is a missing-path failure.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsIO reports whether err is a file copy failure.
// Uses errors.As to handle wrapped errors.
func IsIO(err error) bool {
	return hasCode(err, ErrCodeIOFailure)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// isUniqueViolation matches SQLite's constraint diagnostic. Collisions
// on a TEXT primary key surface with the same message, so one check
// covers both constraint shapes.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// sqlFail converts an internal fault into the operation's typed error.
// Unique violations become DUPLICATE_KEY and are not logged (they are
// the expected answer to inserting a known id); everything else is
// UNEXPECTED and logged with its cause.
func (s *Store) sqlFail(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if isUniqueViolation(err) {
		return &Error{Code: ErrCodeDuplicateKey, Op: op, Message: "duplicate key", Err: err}
	}
	s.log.Error("store operation failed", "op", op, "error", err)
	return &Error{Code: ErrCodeUnexpected, Op: op, Message: "storage fault", Err: err}
}
