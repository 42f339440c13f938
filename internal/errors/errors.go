package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/procurehub/match-engine/model"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedBid is returned when a bid is missing required fields
	ErrMalformedBid = errors.New("malformed bid")

	// ErrPartialResult is returned when some entity providers failed
	ErrPartialResult = errors.New("partial result")

	// ErrAllProvidersFailed is returned when no entity provider produced results
	ErrAllProvidersFailed = errors.New("all providers failed")
)

// ValidationError represents an input validation error with context.
// Validation failures are rejected before any provider or cache work starts.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// MalformedBidError marks one bid in a batch as unusable. The bid is
// skipped; evaluation continues for the remaining bids.
type MalformedBidError struct {
	BidID   string
	Missing string
}

func (e *MalformedBidError) Error() string {
	return fmt.Sprintf("bid '%s' is malformed: missing %s", e.BidID, e.Missing)
}

func (e *MalformedBidError) Is(target error) bool {
	return target == ErrMalformedBid
}

// NewMalformedBidError creates a new MalformedBidError
func NewMalformedBidError(bidID, missing string) *MalformedBidError {
	return &MalformedBidError{BidID: bidID, Missing: missing}
}

// PartialResultError reports that one or more entity providers failed while
// the rest succeeded. Page carries the merged results from the survivors so
// callers can render a degraded-but-useful view.
type PartialResultError struct {
	FailedKinds []model.EntityKind
}

func (e *PartialResultError) Error() string {
	names := make([]string, len(e.FailedKinds))
	for i, kind := range e.FailedKinds {
		names[i] = string(kind)
	}
	return fmt.Sprintf("partial result: providers failed for %s", strings.Join(names, ", "))
}

func (e *PartialResultError) Is(target error) bool {
	return target == ErrPartialResult
}

// NewPartialResultError creates a new PartialResultError
func NewPartialResultError(failedKinds []model.EntityKind) *PartialResultError {
	return &PartialResultError{FailedKinds: failedKinds}
}
