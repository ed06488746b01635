package audit

import (
	"math"
	"math/bits"
)

// Kind enumerates the findings an entry can be flagged with.
type Kind int

const (
	HugeRatio Kind = iota
	ExtremelyLongPath
	InvalidUTF8
	ControlCharsInName
	WindowsReservedName
	ZeroCompressedButLarge
	HeaderMismatch
)

var kindNames = [...]string{
	HugeRatio:              "HugeRatio",
	ExtremelyLongPath:      "ExtremelyLongPath",
	InvalidUTF8:            "InvalidUtf8",
	ControlCharsInName:     "ControlCharsInName",
	WindowsReservedName:    "WindowsReservedName",
	ZeroCompressedButLarge: "ZeroCompressedButLarge",
	HeaderMismatch:         "HeaderMismatch",
}

// String returns the case name used in reports.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Kinds lists every finding kind in declaration order.
func Kinds() []Kind {
	return []Kind{HugeRatio, ExtremelyLongPath, InvalidUTF8, ControlCharsInName,
		WindowsReservedName, ZeroCompressedButLarge, HeaderMismatch}
}

// Reason is a tagged finding. Compressed and Uncompressed are only meaningful
// for HugeRatio.
type Reason struct {
	Kind         Kind
	Compressed   uint64
	Uncompressed uint64
}

// HugeRatioReason builds the HugeRatio finding for the declared sizes.
func HugeRatioReason(compressed, uncompressed uint64) Reason {
	return Reason{Kind: HugeRatio, Compressed: compressed, Uncompressed: uncompressed}
}

// ReasonOf builds a finding that carries no data.
func ReasonOf(k Kind) Reason {
	return Reason{Kind: k}
}

func (r Reason) String() string {
	return r.Kind.String()
}

// SuspiciousEntry pairs an entry name with one finding. An entry may appear
// several times with different reasons.
type SuspiciousEntry struct {
	Name   string
	Reason Reason
}

// Report aggregates the findings of one scan. Handlers mutate it in pipeline
// order; once Scan returns it is no longer written.
type Report struct {
	EntryCount uint64

	// AvgRatio is the running mean of the finite per-entry ratios.
	AvgRatio     float64
	MaxRatio     float64
	MaxDepthHint int

	// Saturating sums of declared sizes.
	TotalCompressed   uint64
	TotalUncompressed uint64

	HasAbsolutePaths    bool
	HasParentComponents bool
	HasEncryptedEntries bool
	HasSymlinks         bool
	TruncatedOrMismatch bool

	SymlinksPointOutsideRoot int

	DuplicateNames    []string
	EncryptedEntries  []string
	SuspiciousEntries []SuspiciousEntry
	Recommendations   []string
}

// NewReport returns an empty report with non-nil lists.
func NewReport() *Report {
	return &Report{
		DuplicateNames:    []string{},
		EncryptedEntries:  []string{},
		SuspiciousEntries: []SuspiciousEntry{},
		Recommendations:   []string{},
	}
}

// Flag records a finding for name.
func (r *Report) Flag(name string, reason Reason) {
	r.SuspiciousEntries = append(r.SuspiciousEntries, SuspiciousEntry{Name: name, Reason: reason})
}

// Recommend appends an advisory string.
func (r *Report) Recommend(text string) {
	r.Recommendations = append(r.Recommendations, text)
}

// CountByKind tallies suspicious entries per finding kind.
func (r *Report) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, e := range r.SuspiciousEntries {
		counts[e.Reason.Kind]++
	}
	return counts
}

// saturatingAdd returns a+b, clamped at math.MaxUint64.
func saturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
