// Package apperr carries the error codes shared by all services so that
// controllers can map outcomes to HTTP statuses programmatically.
package apperr

import "errors"

type ErrCode string

const (
	ErrValidationFailed  ErrCode = "VALIDATION_FAILED"
	ErrInvalidID         ErrCode = "INVALID_ID"
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrConflict          ErrCode = "CONFLICT"
	ErrInsufficientStock ErrCode = "INSUFFICIENT_STOCK"
	ErrEmptyResult       ErrCode = "EMPTY_RESULT"
	ErrStorageFailure    ErrCode = "STORAGE_FAILURE"
	ErrUnknown           ErrCode = "UNKNOWN"
)

type codedError struct {
	code  ErrCode
	msg   string
	cause error
}

func (e codedError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e codedError) Code() ErrCode { return e.code }
func (e codedError) Unwrap() error { return e.cause }

// New makes a coded error with a caller-facing message.
func New(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Wrap attaches a code and message to an underlying error. The cause is kept
// for logging, not for the caller-facing message.
func Wrap(c ErrCode, msg string, cause error) error {
	return codedError{code: c, msg: msg, cause: cause}
}

// Code extracts the error code, or ErrUnknown when err carries none.
func Code(err error) ErrCode {
	if err == nil {
		return ""
	}
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ErrUnknown
}
