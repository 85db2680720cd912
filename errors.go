// errors.go: structured error handling for Plug cell and map operations
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package plug

import (
	goerrors "errors"
	"fmt"

	"github.com/agilira/go-errors"
)

// Error codes for Plug operations.
const (
	// Configuration errors (1xxx)
	ErrCodeInvalidConfig     errors.ErrorCode = "PLUG_INVALID_CONFIG"
	ErrCodeInvalidTableSize  errors.ErrorCode = "PLUG_INVALID_TABLE_SIZE"
	ErrCodeInvalidHasher     errors.ErrorCode = "PLUG_INVALID_HASHER"
	ErrCodeInvalidPollPeriod errors.ErrorCode = "PLUG_INVALID_POLL_PERIOD"

	// Operation errors (2xxx)
	ErrCodeKeyNotFound  errors.ErrorCode = "PLUG_KEY_NOT_FOUND"
	ErrCodeNilValue     errors.ErrorCode = "PLUG_NIL_VALUE"
	ErrCodeStaleCurrent errors.ErrorCode = "PLUG_STALE_CURRENT"

	// Internal errors (5xxx)
	ErrCodeInternalError      errors.ErrorCode = "PLUG_INTERNAL_ERROR"
	ErrCodePanicRecovered     errors.ErrorCode = "PLUG_PANIC_RECOVERED"
	ErrCodeInvariantViolation errors.ErrorCode = "PLUG_INTERNAL_INVARIANT"
)

// Common error messages.
const (
	msgInvalidTableSize   = "invalid initial table size: must be a log2 bin count between 4 and 32"
	msgInvalidHasher      = "invalid hasher: hasher cannot be nil"
	msgInvalidPollPeriod  = "invalid hot-reload poll period: must be positive"
	msgKeyNotFound        = "key not found in map"
	msgNilValue           = "value cannot be nil"
	msgStaleCurrent       = "exchange failed: current value no longer matches"
	msgInternalError      = "internal plug error"
	msgPanicRecovered     = "panic recovered in plug operation"
	msgInvariantViolation = "internal invariant violation"
)

// NewErrInvalidTableSize creates an error for an out-of-range initial
// table size.
func NewErrInvalidTableSize(size int) error {
	return errors.NewWithContext(ErrCodeInvalidTableSize, msgInvalidTableSize, map[string]interface{}{
		"provided_size": size,
		"valid_range":   "4-32, log2 of bin count",
	})
}

// NewErrInvalidHasher creates an error for a nil hasher in Config.
func NewErrInvalidHasher() error {
	return errors.NewWithField(ErrCodeInvalidHasher, msgInvalidHasher, "field", "Hasher")
}

// NewErrInvalidPollPeriod creates an error for a non-positive hot-reload
// poll period.
func NewErrInvalidPollPeriod(period interface{}) error {
	return errors.NewWithField(ErrCodeInvalidPollPeriod, msgInvalidPollPeriod, "poll_period", period)
}

// NewErrKeyNotFound creates an error when a key is absent from a map.
func NewErrKeyNotFound(key interface{}) error {
	return errors.NewWithField(ErrCodeKeyNotFound, msgKeyNotFound, "key", fmt.Sprintf("%v", key))
}

// NewErrNilValue creates an error when a nil pointer is adopted through
// one of the *Ptr constructors.
func NewErrNilValue(operation string) error {
	return errors.NewWithField(ErrCodeNilValue, msgNilValue, "operation", operation)
}

// NewErrStaleCurrent creates an error describing a failed Exchange.
func NewErrStaleCurrent(operation string) error {
	return errors.NewWithField(ErrCodeStaleCurrent, msgStaleCurrent, "operation", operation).
		AsRetryable()
}

// NewErrInternal creates a generic internal error, optionally wrapping a
// root cause.
func NewErrInternal(operation string, cause error) error {
	if cause != nil {
		return errors.Wrap(cause, ErrCodeInternalError, msgInternalError).
			WithContext("operation", operation).
			WithSeverity("warning")
	}
	return errors.NewWithField(ErrCodeInternalError, msgInternalError, "operation", operation).
		WithSeverity("warning")
}

// NewErrPanicRecovered creates an error when a panic is recovered from
// a registration or config-reload callback.
func NewErrPanicRecovered(operation string, panicValue interface{}) error {
	return errors.NewWithContext(ErrCodePanicRecovered, msgPanicRecovered, map[string]interface{}{
		"operation":   operation,
		"panic_value": fmt.Sprintf("%v", panicValue),
	}).WithSeverity("critical")
}

// invariantViolation panics with a structured *errors.Error carrying
// code PLUG_INTERNAL_INVARIANT, for internal states that the
// mutation-domain/chain protocols guarantee can never occur. Reaching
// this call means a bug in this package, not a caller mistake or a
// retryable race, so it is deliberately not a recoverable error —
// callers that recover it can still inspect the code/context via
// GetErrorCode/GetErrorContext before deciding whether to abort.
func invariantViolation(operation, detail string) {
	panic(errors.NewWithContext(ErrCodeInvariantViolation, msgInvariantViolation, map[string]interface{}{
		"operation": operation,
		"detail":    detail,
	}).WithSeverity("critical"))
}

// IsNotFound checks if err is a key-not-found error.
func IsNotFound(err error) bool {
	return errors.HasCode(err, ErrCodeKeyNotFound)
}

// IsConfigError checks if err is a configuration error.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		code := coder.ErrorCode()
		return code == ErrCodeInvalidConfig || code == ErrCodeInvalidTableSize ||
			code == ErrCodeInvalidHasher || code == ErrCodeInvalidPollPeriod
	}
	return false
}

// IsRetryable checks if err can be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the error code from err, if any.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts the structured context from err, if any.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var plugErr *errors.Error
	if goerrors.As(err, &plugErr) {
		return plugErr.Context
	}
	return nil
}
