package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable, user-facing failure modes. Anything
// else coming out of the storage layer is wrapped in a StorageError and
// surfaced opaque.
var (
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrEquipmentNotFound    = errors.New("equipment type not found")
	ErrContractNotFound     = errors.New("contract not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrContractClosed       = errors.New("contract is not active")
	ErrNothingToReturn      = errors.New("no open items to return")
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrReleaseExceedsTotal rejects a stock release that would push
	// available_quantity past total_quantity. That only happens on a double
	// release or corrupted counters, so it is surfaced instead of clamped.
	ErrReleaseExceedsTotal = errors.New("release would exceed total quantity")
)

// ValidationError rejects malformed input before any mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for one offending field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps an underlying driver or transaction failure. Callers log
// it with full context and return an opaque message to the client.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// WrapStorage tags err as a storage failure for the operation op. Sentinel
// and validation errors pass through untouched so callers can still match
// them with errors.Is.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsValidation(err) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrEquipmentNotFound) ||
		errors.Is(err, ErrContractNotFound) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrContractClosed) ||
		errors.Is(err, ErrNothingToReturn) ||
		errors.Is(err, ErrNotificationNotFound) ||
		errors.Is(err, ErrReleaseExceedsTotal) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
