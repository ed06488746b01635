// Package errors provides typed error handling for zipaudit operations.
//
// Codes are stable strings surfaced by the CLI (exit codes) and the MCP
// server (error payloads).
//
// Example usage:
//
//	// Creating errors
//	err := errors.ArchiveNotFound("/tmp/missing.zip")
//
//	// Wrapping errors
//	err := errors.EntryReadFailed(3, ioErr)
//
//	// Checking error codes
//	if errors.Is(err, errors.CodeEntryReadFailed) {
//	    // archive is truncated or inconsistent
//	}
//
//	// Extracting codes
//	code := errors.Code(err)
//	if code == errors.CodeArchiveOpenFailed {
//	    // not a readable archive
//	}
//
//	// Stdlib compatibility
//	var auditErr *errors.Error
//	if errors.As(err, &auditErr) {
//	    fmt.Println(auditErr.Code, auditErr.Message)
//	}
package errors
