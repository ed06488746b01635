// Package render turns an audit report into the documents shown to users:
// a JSON object for tooling and a colored text summary for terminals.
package render

import (
	"encoding/json"
	"io"
	"math"

	"github.com/Fuabioo/zipaudit/internal/audit"
)

// Document is the JSON form of a report. Keys match the report field names;
// non-finite ratios encode as null.
type Document struct {
	EntryCount               uint64       `json:"entry_count"`
	AvgRatio                 *float64     `json:"avg_ratio"`
	MaxRatio                 *float64     `json:"max_ratio"`
	MaxDepthHint             int          `json:"max_depth_hint"`
	TotalCompressed          uint64       `json:"total_compressed"`
	TotalUncompressed        uint64       `json:"total_uncompressed"`
	HasAbsolutePaths         bool         `json:"has_absolute_paths"`
	HasParentComponents      bool         `json:"has_parent_components"`
	HasEncryptedEntries      bool         `json:"has_encrypted_entries"`
	HasSymlinks              bool         `json:"has_symlinks"`
	TruncatedOrMismatch      bool         `json:"truncated_or_mismatch"`
	SymlinksPointOutsideRoot int          `json:"symlinks_point_outside_root"`
	DuplicateNames           []string     `json:"duplicate_names"`
	EncryptedEntries         []string     `json:"encrypted_entries"`
	SuspiciousEntries        []Suspicious `json:"suspicious_entries"`
	Recommendations          []string     `json:"recommendations"`
}

// Suspicious is one flagged entry.
type Suspicious struct {
	Name   string `json:"name"`
	Reason Reason `json:"reason"`
}

// Reason encodes a finding as its bare case name, or as
// {"HugeRatio": {"compressed": n, "uncompressed": m}} when it carries sizes.
type Reason audit.Reason

type hugeRatioFields struct {
	Compressed   uint64 `json:"compressed"`
	Uncompressed uint64 `json:"uncompressed"`
}

func (r Reason) MarshalJSON() ([]byte, error) {
	if r.Kind == audit.HugeRatio {
		return json.Marshal(map[string]hugeRatioFields{
			r.Kind.String(): {Compressed: r.Compressed, Uncompressed: r.Uncompressed},
		})
	}
	return json.Marshal(r.Kind.String())
}

// NewDocument converts a report. Lists in the result are never nil.
func NewDocument(r *audit.Report) Document {
	doc := Document{
		EntryCount:               r.EntryCount,
		AvgRatio:                 finite(r.AvgRatio),
		MaxRatio:                 finite(r.MaxRatio),
		MaxDepthHint:             r.MaxDepthHint,
		TotalCompressed:          r.TotalCompressed,
		TotalUncompressed:        r.TotalUncompressed,
		HasAbsolutePaths:         r.HasAbsolutePaths,
		HasParentComponents:      r.HasParentComponents,
		HasEncryptedEntries:      r.HasEncryptedEntries,
		HasSymlinks:              r.HasSymlinks,
		TruncatedOrMismatch:      r.TruncatedOrMismatch,
		SymlinksPointOutsideRoot: r.SymlinksPointOutsideRoot,
		DuplicateNames:           nonNil(r.DuplicateNames),
		EncryptedEntries:         nonNil(r.EncryptedEntries),
		SuspiciousEntries:        make([]Suspicious, 0, len(r.SuspiciousEntries)),
		Recommendations:          nonNil(r.Recommendations),
	}

	for _, e := range r.SuspiciousEntries {
		doc.SuspiciousEntries = append(doc.SuspiciousEntries, Suspicious{Name: e.Name, Reason: Reason(e.Reason)})
	}

	return doc
}

// JSON writes the report as one JSON object followed by a newline.
func JSON(w io.Writer, r *audit.Report, pretty bool) error {
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(NewDocument(r))
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
