// Package errors provides custom error types for the teamsync system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the teamsync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrPermission indicates that the API token lacks the required scope
	ErrPermission = errors.New("permission denied")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrTransient indicates a temporary remote failure worth retrying later
	ErrTransient = errors.New("transient remote failure")

	// ErrTokenRequired indicates that a GitHub token is required but not provided
	ErrTokenRequired = errors.New("GitHub token required")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")
)

// APIError represents an error returned by the GitHub API.
type APIError struct {
	Operation  string // "get team", "list members", "add member", ...
	Resource   string // team slug, user login, commit hash
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("github %s %s: status %d: %s", e.Operation, e.Resource, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support, mapping status codes to sentinels.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 404:
		return target == ErrNotFound
	case 401, 403:
		return target == ErrPermission
	case 429:
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrTransient
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(operation, resource string, statusCode int, message string) *APIError {
	return &APIError{
		Operation:  operation,
		Resource:   resource,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "blame", ...
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// LedgerError represents a failure reading or writing the invitation ledger.
// Ledger failures are always fatal to a run: reconciling without the ledger
// risks re-inviting users who already rejected an invitation.
type LedgerError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *LedgerError) Error() string {
	return fmt.Sprintf("invitation ledger %s: %s", e.Path, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError
func NewLedgerError(path, message string, err error) *LedgerError {
	return &LedgerError{
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPermission checks if an error is a permission error
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTransient checks if an error indicates a temporary remote failure
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
