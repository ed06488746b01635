// Package policy decides whether an audited archive is acceptable.
//
// The audit itself never rejects anything; a Policy turns a report into a
// list of violations that callers such as the CLI --check mode act on.
package policy

import (
	"fmt"
	"math"

	"github.com/Fuabioo/zipaudit/internal/audit"
	gitignore "github.com/sabhiram/go-gitignore"
)

// Rule names reported in violations.
const (
	RuleMaxRatio            = "max_ratio"
	RuleMaxDepth            = "max_depth"
	RuleAbsolutePaths       = "absolute_paths"
	RuleParentComponents    = "parent_components"
	RuleEncrypted           = "encrypted"
	RuleSymlinksOutsideRoot = "symlinks_outside_root"
	RuleDuplicates          = "duplicate_names"
	RuleSuspicious          = "suspicious_entry"
	RuleTruncated           = "truncated"
)

// Policy lists the conditions that make an archive unacceptable.
// A zero MaxRatio or MaxDepth disables that limit.
type Policy struct {
	MaxRatio                  float64  `json:"max_ratio" yaml:"max_ratio"`
	MaxDepth                  int      `json:"max_depth" yaml:"max_depth"`
	RejectAbsolutePaths       bool     `json:"reject_absolute_paths" yaml:"reject_absolute_paths"`
	RejectParentComponents    bool     `json:"reject_parent_components" yaml:"reject_parent_components"`
	RejectEncrypted           bool     `json:"reject_encrypted" yaml:"reject_encrypted"`
	RejectSymlinksOutsideRoot bool     `json:"reject_symlinks_outside_root" yaml:"reject_symlinks_outside_root"`
	RejectDuplicates          bool     `json:"reject_duplicates" yaml:"reject_duplicates"`
	RejectSuspicious          bool     `json:"reject_suspicious" yaml:"reject_suspicious"`

	// RejectTruncated only fires on reports built by callers. audit.Scan sets
	// TruncatedOrMismatch and then fails with ENTRY_READ_FAILED without
	// returning the report, so scanned archives never reach this rule; the
	// error itself is the rejection.
	RejectTruncated bool `json:"reject_truncated" yaml:"reject_truncated"`

	// Ignore holds gitignore-style patterns. Per-entry findings (suspicious
	// entries, duplicate and encrypted names) whose name matches are skipped.
	// Aggregate rules are unaffected.
	Ignore []string `json:"ignore" yaml:"ignore"`
}

// Default returns the policy used when no configuration is present.
func Default() Policy {
	return Policy{
		MaxRatio:                  500,
		MaxDepth:                  25,
		RejectAbsolutePaths:       true,
		RejectParentComponents:    true,
		RejectEncrypted:           true,
		RejectSymlinksOutsideRoot: true,
		RejectDuplicates:          true,
		RejectSuspicious:          true,
		RejectTruncated:           true,
	}
}

// Violation is one broken rule.
type Violation struct {
	Rule   string `json:"rule"`
	Detail string `json:"detail"`
	Entry  string `json:"entry,omitempty"`
}

func (v Violation) String() string {
	if v.Entry != "" {
		return fmt.Sprintf("%s: %s (%q)", v.Rule, v.Detail, v.Entry)
	}
	return fmt.Sprintf("%s: %s", v.Rule, v.Detail)
}

// Evaluate checks the report against the policy. An empty result means the
// archive is acceptable.
func (p Policy) Evaluate(r *audit.Report) []Violation {
	var out []Violation
	add := func(rule, entry, format string, args ...any) {
		out = append(out, Violation{Rule: rule, Entry: entry, Detail: fmt.Sprintf(format, args...)})
	}

	ignored := p.matcher()

	if p.RejectTruncated && r.TruncatedOrMismatch {
		add(RuleTruncated, "", "archive is truncated or inconsistent")
	}
	if p.MaxRatio > 0 && r.MaxRatio > p.MaxRatio {
		if math.IsInf(r.MaxRatio, 1) {
			add(RuleMaxRatio, "", "an entry expands from zero compressed bytes (limit %g)", p.MaxRatio)
		} else {
			add(RuleMaxRatio, "", "max compression ratio %.1f exceeds %g", r.MaxRatio, p.MaxRatio)
		}
	}
	if p.MaxDepth > 0 && r.MaxDepthHint > p.MaxDepth {
		add(RuleMaxDepth, "", "directory depth %d exceeds %d", r.MaxDepthHint, p.MaxDepth)
	}
	if p.RejectAbsolutePaths && r.HasAbsolutePaths {
		add(RuleAbsolutePaths, "", "archive contains absolute paths")
	}
	if p.RejectParentComponents && r.HasParentComponents {
		add(RuleParentComponents, "", "archive contains parent directory components")
	}
	if p.RejectSymlinksOutsideRoot && r.SymlinksPointOutsideRoot > 0 {
		add(RuleSymlinksOutsideRoot, "", "%d symlink(s) point outside the extraction root", r.SymlinksPointOutsideRoot)
	}

	if p.RejectEncrypted {
		for _, name := range r.EncryptedEntries {
			if !ignored(name) {
				add(RuleEncrypted, name, "entry is encrypted")
			}
		}
	}
	if p.RejectDuplicates {
		for _, name := range r.DuplicateNames {
			if !ignored(name) {
				add(RuleDuplicates, name, "name appears more than once")
			}
		}
	}
	if p.RejectSuspicious {
		for _, e := range r.SuspiciousEntries {
			if !ignored(e.Name) {
				add(RuleSuspicious, e.Name, "%s", e.Reason)
			}
		}
	}

	return out
}

func (p Policy) matcher() func(name string) bool {
	if len(p.Ignore) == 0 {
		return func(string) bool { return false }
	}
	gi := gitignore.CompileIgnoreLines(p.Ignore...)
	return gi.MatchesPath
}
