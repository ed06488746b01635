// Package audit inspects archive metadata and aggregates a risk report
// without extracting anything.
//
// A scan builds one Snapshot per entry and hands it to an ordered Pipeline
// of handlers. Each handler records what it sees in the shared Report:
//
//	report, err := audit.AuditFile(ctx, "bundle.zip")
//
// Custom handlers are added with WithExtraHandlers or replace the default
// set with WithHandlers.
package audit
