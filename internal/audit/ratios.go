package audit

import (
	"math"

	"github.com/Fuabioo/zipaudit/internal/security"
)

// RatiosHandler accumulates size totals and ratio statistics and flags
// entries whose declared sizes look like a decompression bomb.
//
// The mean is updated only by finite ratios but always divides by the entry
// count, so an infinite ratio skips the update while still counting as a sample.
type RatiosHandler struct{}

func (RatiosHandler) Visit(s *Snapshot, r *Report) {
	r.TotalCompressed = saturatingAdd(r.TotalCompressed, s.CompressedSize)
	r.TotalUncompressed = saturatingAdd(r.TotalUncompressed, s.UncompressedSize)

	if !math.IsInf(s.Ratio, 0) && !math.IsNaN(s.Ratio) {
		r.AvgRatio += (s.Ratio - r.AvgRatio) / float64(r.EntryCount)
	}
	if s.Ratio > r.MaxRatio {
		r.MaxRatio = s.Ratio
	}

	if s.Ratio > security.MaxSuspiciousRatio {
		r.Flag(s.Name, HugeRatioReason(s.CompressedSize, s.UncompressedSize))
	}
	if s.CompressedSize == 0 && s.UncompressedSize > security.ZeroCompressedLargeThreshold {
		r.Flag(s.Name, ReasonOf(ZeroCompressedButLarge))
	}
}
