package audit

import "github.com/Fuabioo/zipaudit/internal/security"

// PathHandler tracks absolute paths, parent traversals and nesting depth,
// and flags names that are not valid UTF-8.
type PathHandler struct{}

func (PathHandler) Visit(s *Snapshot, r *Report) {
	if s.HasAbsolutePath {
		r.HasAbsolutePaths = true
	}
	if s.HasParentComponents {
		r.HasParentComponents = true
	}
	if s.DepthHint > r.MaxDepthHint {
		r.MaxDepthHint = s.DepthHint
	}
	if s.InvalidUTF8 {
		r.Flag(security.LossyName(s.RawName), ReasonOf(InvalidUTF8))
	}
}
