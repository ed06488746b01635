package render

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/Fuabioo/zipaudit/internal/audit"
	"github.com/fatih/color"
)

type styles struct {
	heading *color.Color
	label   *color.Color
	ok      *color.Color
	warn    *color.Color
	danger  *color.Color
	name    *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		heading: color.New(color.Bold),
		label:   color.New(color.FgHiBlue),
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		danger:  color.New(color.Bold, color.FgRed),
		name:    color.New(color.FgHiWhite),
	}

	for _, c := range []*color.Color{s.heading, s.label, s.ok, s.warn, s.danger, s.name} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}

// flag renders a boolean risk indicator.
func (s *styles) flag(v bool) string {
	if v {
		return s.danger.Sprint("yes")
	}
	return s.ok.Sprint("no")
}

// Text writes a human-readable summary of the report.
func Text(w io.Writer, r *audit.Report, enableColor bool) error {
	s := newStyles(enableColor)
	p := &printer{w: w}

	p.line(s.heading.Sprint("Archive audit"))
	p.field(s, "Entries", strconv.FormatUint(r.EntryCount, 10))
	p.field(s, "Compressed", fmt.Sprintf("%d bytes", r.TotalCompressed))
	p.field(s, "Uncompressed", fmt.Sprintf("%d bytes", r.TotalUncompressed))
	p.field(s, "Average ratio", formatRatio(r.AvgRatio))
	p.field(s, "Max ratio", formatRatio(r.MaxRatio))
	p.field(s, "Max depth", strconv.Itoa(r.MaxDepthHint))
	p.field(s, "Absolute paths", s.flag(r.HasAbsolutePaths))
	p.field(s, "Parent components", s.flag(r.HasParentComponents))
	p.field(s, "Encrypted entries", s.flag(r.HasEncryptedEntries))
	p.field(s, "Symlinks", s.flag(r.HasSymlinks))
	p.field(s, "Symlinks outside root", strconv.Itoa(r.SymlinksPointOutsideRoot))
	p.field(s, "Truncated or mismatch", s.flag(r.TruncatedOrMismatch))

	if len(r.SuspiciousEntries) > 0 {
		p.line("")
		p.line(s.heading.Sprintf("Suspicious entries (%d)", len(r.SuspiciousEntries)))
		for _, e := range r.SuspiciousEntries {
			p.line(fmt.Sprintf("  %s  %s", s.warn.Sprint(describeReason(e.Reason)), s.name.Sprintf("%q", e.Name)))
		}
	}

	p.list(s, "Duplicate names", r.DuplicateNames)
	p.list(s, "Encrypted", r.EncryptedEntries)

	if len(r.Recommendations) > 0 {
		p.line("")
		p.line(s.heading.Sprint("Recommendations"))
		for _, rec := range r.Recommendations {
			p.line("  - " + rec)
		}
	}

	return p.err
}

func describeReason(r audit.Reason) string {
	if r.Kind == audit.HugeRatio {
		return fmt.Sprintf("%s (%d -> %d bytes)", r.Kind, r.Compressed, r.Uncompressed)
	}
	return r.Kind.String()
}

func formatRatio(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// printer remembers the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) field(s *styles, label, value string) {
	p.line(fmt.Sprintf("  %s %s", s.label.Sprintf("%-22s", label+":"), value))
}

func (p *printer) list(s *styles, title string, names []string) {
	if len(names) == 0 {
		return
	}
	p.line("")
	p.line(s.heading.Sprintf("%s (%d)", title, len(names)))
	for _, n := range names {
		p.line("  " + s.name.Sprintf("%q", n))
	}
}
