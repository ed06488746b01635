package errors

import (
	"errors"
	"fmt"
)

// Error code constants shared by the CLI exit codes and MCP error payloads
const (
	CodeArchiveNotFound   = "ARCHIVE_NOT_FOUND"
	CodeArchiveOpenFailed = "ARCHIVE_OPEN_FAILED"
	CodeEntryReadFailed   = "ENTRY_READ_FAILED"
	CodeScanCancelled     = "SCAN_CANCELLED"
	CodePolicyViolation   = "POLICY_VIOLATION"
	CodeInvalidConfig     = "INVALID_CONFIG"
)

// Error represents a zipaudit error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	wrapped error
	Code    string
	Message string
}

// Error returns the error message, implementing the error interface.
func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error, supporting errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.wrapped
}

// New creates a new zipaudit error with the given code and message.
func New(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new zipaudit error that wraps an underlying error.
func Wrap(code string, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		wrapped: err,
	}
}

// Code extracts the error code from an error.
// Returns an empty string if the error is not a zipaudit error.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var auditErr *Error
	if errors.As(err, &auditErr) {
		return auditErr.Code
	}
	return ""
}

// Is checks if an error has a specific error code.
func Is(err error, code string) bool {
	return Code(err) == code
}

// Convenience constructors for each error code

// ArchiveNotFound creates an ARCHIVE_NOT_FOUND error.
func ArchiveNotFound(path string) *Error {
	return New(CodeArchiveNotFound, fmt.Sprintf("archive %q does not exist", path))
}

// ArchiveOpenFailed creates an ARCHIVE_OPEN_FAILED error wrapping the codec failure.
func ArchiveOpenFailed(err error) *Error {
	return Wrap(CodeArchiveOpenFailed, "failed to open archive", err)
}

// EntryReadFailed creates an ENTRY_READ_FAILED error for the entry at index.
func EntryReadFailed(index int, err error) *Error {
	return Wrap(CodeEntryReadFailed, fmt.Sprintf("failed to read entry %d", index), err)
}

// ScanCancelled creates a SCAN_CANCELLED error wrapping the context error.
func ScanCancelled(processed uint64, err error) *Error {
	return Wrap(CodeScanCancelled, fmt.Sprintf("scan cancelled after %d entries", processed), err)
}

// PolicyViolation creates a POLICY_VIOLATION error.
func PolicyViolation(count int) *Error {
	return New(CodePolicyViolation, fmt.Sprintf("archive violates %d policy rule(s)", count))
}

// InvalidConfig creates an INVALID_CONFIG error wrapping the parse failure.
func InvalidConfig(source string, err error) *Error {
	return Wrap(CodeInvalidConfig, fmt.Sprintf("invalid configuration in %s", source), err)
}
