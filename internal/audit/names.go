package audit

import "github.com/Fuabioo/zipaudit/internal/security"

// NamesHandler flags names that are oversized, carry control bytes or are
// reserved device names on Windows. One entry can collect several findings.
type NamesHandler struct{}

func (NamesHandler) Visit(s *Snapshot, r *Report) {
	if security.PathIsExtremelyLong(s.RawName) {
		r.Flag(s.Name, ReasonOf(ExtremelyLongPath))
	}
	if security.ContainsControlChars(s.RawName) {
		r.Flag(s.Name, ReasonOf(ControlCharsInName))
	}
	if security.IsWindowsReservedName(s.Name) {
		r.Flag(s.Name, ReasonOf(WindowsReservedName))
	}
}
