package security

import "math"

// Thresholds used by the audit handlers.
const (
	// MaxSuspiciousRatio is the per-entry compression ratio above which an
	// entry is reported as a likely zip bomb.
	MaxSuspiciousRatio = 1000.0

	// ZeroCompressedLargeThreshold flags entries that claim zero compressed
	// bytes yet expand past this many bytes.
	ZeroCompressedLargeThreshold = 1024 * 1024 // 1 MiB

	// RecommendedMaxDepth is the directory depth above which limiting
	// extraction depth is recommended.
	RecommendedMaxDepth = 25

	// SymlinkTargetReadLimit bounds how much of a symlink payload is read.
	SymlinkTargetReadLimit = 8192
)

// CompressionRatio returns uncompressed/compressed, or +Inf when compressed is
// zero (including the empty 0/0 entry).
func CompressionRatio(compressed, uncompressed uint64) float64 {
	if compressed == 0 {
		return math.Inf(1)
	}
	return float64(uncompressed) / float64(compressed)
}
