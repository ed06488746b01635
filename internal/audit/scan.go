package audit

import (
	"context"
	"io"
	"os"

	"github.com/Fuabioo/zipaudit/internal/archive"
	"github.com/Fuabioo/zipaudit/internal/errors"
)

// Scan runs the pipeline over every entry of r in index order and returns
// the completed report. Any entry failure aborts the scan; no partial report
// is returned.
func Scan(ctx context.Context, r archive.Reader, opts ...Option) (*Report, error) {
	o := newOptions(opts)
	pipeline := o.pipeline()
	report := NewReport()

	total := r.Len()
	o.logger.Debug("scan started", "entries", total, "handlers", len(pipeline))
	pipeline.Begin(total)

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			o.logger.Debug("scan cancelled", "index", i, "processed", report.EntryCount)
			return nil, errors.ScanCancelled(report.EntryCount, err)
		}

		entry, err := r.Entry(i)
		if err != nil {
			if archive.IsInvalidArchive(err) {
				report.TruncatedOrMismatch = true
			}
			o.logger.Warn("entry read failed",
				"index", i,
				"truncated_or_mismatch", report.TruncatedOrMismatch,
				"error", err,
			)
			return nil, errors.EntryReadFailed(i, err)
		}

		report.EntryCount++
		pipeline.Visit(NewSnapshot(entry), report)
	}

	pipeline.Finish(report)
	o.logger.Debug("scan finished",
		"entries", report.EntryCount,
		"suspicious", len(report.SuspiciousEntries),
		"duplicates", len(report.DuplicateNames),
	)

	return report, nil
}

// Audit opens the ZIP archive held by ra and scans it.
func Audit(ctx context.Context, ra io.ReaderAt, size int64, opts ...Option) (*Report, error) {
	ok, err := archive.IsZip(ra)
	if err != nil {
		return nil, errors.ArchiveOpenFailed(err)
	}
	if !ok {
		return nil, errors.ArchiveOpenFailed(archive.ErrNotZip)
	}

	z, err := archive.OpenZip(ra, size)
	if err != nil {
		return nil, errors.ArchiveOpenFailed(err)
	}
	defer z.Close()

	return Scan(ctx, z, opts...)
}

// AuditFile opens the ZIP archive at path and scans it.
func AuditFile(ctx context.Context, path string, opts ...Option) (*Report, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ArchiveNotFound(path)
		}
		return nil, errors.ArchiveOpenFailed(err)
	}

	ok, err := archive.IsZipFile(path)
	if err != nil {
		return nil, errors.ArchiveOpenFailed(err)
	}
	if !ok {
		return nil, errors.ArchiveOpenFailed(archive.ErrNotZip)
	}

	z, err := archive.OpenZipFile(path)
	if err != nil {
		return nil, errors.ArchiveOpenFailed(err)
	}
	defer z.Close()

	return Scan(ctx, z, opts...)
}
