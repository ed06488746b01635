package audit

import "github.com/Fuabioo/zipaudit/internal/security"

// SymlinksHandler counts symlinks whose target leaves the extraction root.
type SymlinksHandler struct{}

func (SymlinksHandler) Visit(s *Snapshot, r *Report) {
	if !s.IsSymlink {
		return
	}
	r.HasSymlinks = true

	if s.HasSymlinkTarget && !security.IsWithinRoot(s.SymlinkTarget) {
		r.SymlinksPointOutsideRoot++
	}
}
