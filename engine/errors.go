/*
errors.go - Centralized error types for the shift engine

PURPOSE:
  Every operation that depends on an external write returns an error that
  classifies into exactly one Kind. Callers branch with errors.Is against
  the sentinels, or switch on KindOf(err) when they need the tag itself
  (the API layer maps kinds to HTTP status codes this way).

ERROR CATEGORIES:
  1. NotFound      - Shift/employer/entry id unknown to the store
  2. Conflict      - Overlap with another shift, or a store uniqueness
                     violation (second outcome for a shift, duplicate unlock)
  3. Unauthorized  - Caller does not own the record
  4. StoreFailure  - Anything else that went wrong below the engine
  5. InvalidInput  - Malformed dates/times/amounts rejected before any write

PURE COMPUTATIONS:
  Reconcile, ComputeStats and DetectOverlap never return errors. Imperfect
  history (orphaned outcomes, missing employers) is excluded or defaulted.

SEE ALSO:
  - store.go: Ports whose implementations produce these errors
  - store/sqlite/sqlite.go: Translates driver errors into these kinds
  - api/handlers.go: Kind to HTTP status mapping
*/
package engine

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned for overlaps and uniqueness violations.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized is returned when the caller does not own the record.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStoreFailure is returned when persistence fails for any other reason.
	ErrStoreFailure = errors.New("store failure")

	// ErrInvalidInput is returned when input cannot be parsed or validated.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRange is returned when a date range ends before it starts.
	ErrInvalidRange = fmt.Errorf("%w: range ends before it starts", ErrInvalidInput)

	// ErrLimitReached is returned by callers that enforce the advisory quota.
	ErrLimitReached = errors.New("weekly limit reached")
)

// Kind tags an error with the category callers switch on.
type Kind string

const (
	KindNone         Kind = ""
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindInvalidInput Kind = "invalid_input"
	KindLimitReached Kind = "limit_reached"
	KindStoreFailure Kind = "store_failure"
)

// KindOf classifies err. Unknown non-nil errors are StoreFailure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrLimitReached):
		return KindLimitReached
	default:
		return KindStoreFailure
	}
}

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// OverlapError lists the shifts a candidate interval intersects.
type OverlapError struct {
	Conflicts []PlannedShift
}

func (e *OverlapError) Error() string {
	ids := make([]string, len(e.Conflicts))
	for i, s := range e.Conflicts {
		ids[i] = string(s.ID)
	}
	return fmt.Sprintf("shift overlaps %d existing shift(s): %s", len(ids), strings.Join(ids, ", "))
}

func (e *OverlapError) Unwrap() error { return ErrConflict }

// StoreError wraps a persistence failure with the operation that failed.
// KindOf checks client kinds first, so a NotFound cause keeps its kind.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStoreFailure, e.Cause}
}

// LimitError reports which weekly cap the caller hit.
type LimitError struct {
	Resource string // "shifts" or "entries"
	Used     int
	Limit    int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("weekly %s limit reached: %d of %d used", e.Resource, e.Used, e.Limit)
}

func (e *LimitError) Unwrap() error { return ErrLimitReached }

// =============================================================================
// ERROR HELPERS
// =============================================================================

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsClientError returns true if the error is due to the caller's input or identity.
func IsClientError(err error) bool {
	switch KindOf(err) {
	case KindNotFound, KindConflict, KindUnauthorized, KindInvalidInput, KindLimitReached:
		return true
	}
	return false
}

// storeErr wraps cause unless it already classifies as a client error.
func storeErr(op string, cause error) error {
	if cause == nil {
		return nil
	}
	if IsClientError(cause) {
		return fmt.Errorf("%s: %w", op, cause)
	}
	return &StoreError{Op: op, Cause: cause}
}

// WrapStore is exported for store implementations outside this package.
func WrapStore(op string, cause error) error { return storeErr(op, cause) }
