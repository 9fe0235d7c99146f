package model

import (
	"errors"
	"fmt"
)

// DuplicateFactorError indicates a factor name appeared more than once
// while constructing a Context.
type DuplicateFactorError struct {
	Name string
}

// Error returns the error message.
func (e *DuplicateFactorError) Error() string {
	return fmt.Sprintf("duplicate context factor %q", e.Name)
}

// IsDuplicateFactorError checks if an error is a duplicate factor error.
func IsDuplicateFactorError(err error) bool {
	var target *DuplicateFactorError
	return errors.As(err, &target)
}

// InvalidFactorError indicates a factor carries a value outside the
// supported scalar union (numeric, boolean, short text).
type InvalidFactorError struct {
	Name    string
	message string
}

// NewInvalidFactorError creates a new invalid factor error.
func NewInvalidFactorError(name, format string, args ...interface{}) *InvalidFactorError {
	return &InvalidFactorError{
		Name:    name,
		message: fmt.Sprintf(format, args...),
	}
}

// Error returns the error message.
func (e *InvalidFactorError) Error() string {
	return fmt.Sprintf("invalid context factor %q: %s", e.Name, e.message)
}

// IsInvalidFactorError checks if an error is an invalid factor error.
func IsInvalidFactorError(err error) bool {
	var target *InvalidFactorError
	return errors.As(err, &target)
}

// InvalidConfidenceError indicates a confidence value outside [0, 1].
type InvalidConfidenceError struct {
	Confidence float64
}

// Error returns the error message.
func (e *InvalidConfidenceError) Error() string {
	return fmt.Sprintf("confidence must be in [0.0, 1.0], got %v", e.Confidence)
}

// IsInvalidConfidenceError checks if an error is an invalid confidence error.
func IsInvalidConfidenceError(err error) bool {
	var target *InvalidConfidenceError
	return errors.As(err, &target)
}

// InvalidReasoningChainError indicates reasoning step indices are not
// contiguous starting at 0.
type InvalidReasoningChainError struct {
	message string
}

// NewInvalidReasoningChainError creates a new invalid reasoning chain error.
func NewInvalidReasoningChainError(format string, args ...interface{}) *InvalidReasoningChainError {
	return &InvalidReasoningChainError{
		message: fmt.Sprintf(format, args...),
	}
}

// Error returns the error message.
func (e *InvalidReasoningChainError) Error() string {
	return fmt.Sprintf("invalid reasoning chain: %s", e.message)
}

// IsInvalidReasoningChainError checks if an error is an invalid reasoning chain error.
func IsInvalidReasoningChainError(err error) bool {
	var target *InvalidReasoningChainError
	return errors.As(err, &target)
}

// InvalidMetadataError indicates a metadata entry carries a value outside
// the supported scalar union.
type InvalidMetadataError struct {
	Key     string
	message string
}

// NewInvalidMetadataError creates a new invalid metadata error.
func NewInvalidMetadataError(key, format string, args ...interface{}) *InvalidMetadataError {
	return &InvalidMetadataError{
		Key:     key,
		message: fmt.Sprintf(format, args...),
	}
}

// Error returns the error message.
func (e *InvalidMetadataError) Error() string {
	return fmt.Sprintf("invalid metadata entry %q: %s", e.Key, e.message)
}

// IsInvalidMetadataError checks if an error is an invalid metadata error.
func IsInvalidMetadataError(err error) bool {
	var target *InvalidMetadataError
	return errors.As(err, &target)
}

// NotFoundError indicates a decision id is not present in the store.
type NotFoundError struct {
	ID string
}

// Error returns the error message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("explanation %q not found", e.ID)
}

// IsNotFoundError checks if an error is a not found error.
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// DuplicateIDError indicates an append with a decision id that is already
// present.
type DuplicateIDError struct {
	ID string
}

// Error returns the error message.
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("explanation %q already appended", e.ID)
}

// IsDuplicateIDError checks if an error is a duplicate id error.
func IsDuplicateIDError(err error) bool {
	var target *DuplicateIDError
	return errors.As(err, &target)
}

// FactorNotFoundError indicates no explanation in the analyzed history
// contains the requested factor.
type FactorNotFoundError struct {
	Name string
}

// Error returns the error message.
func (e *FactorNotFoundError) Error() string {
	return fmt.Sprintf("no explanation contains factor %q", e.Name)
}

// IsFactorNotFoundError checks if an error is a factor not found error.
func IsFactorNotFoundError(err error) bool {
	var target *FactorNotFoundError
	return errors.As(err, &target)
}
