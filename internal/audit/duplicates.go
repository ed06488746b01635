package audit

// DuplicatesHandler records every repeat occurrence of a sanitized name.
// A name seen k times is appended k-1 times.
type DuplicatesHandler struct {
	seen map[string]struct{}
}

func NewDuplicatesHandler() *DuplicatesHandler {
	return &DuplicatesHandler{seen: make(map[string]struct{})}
}

func (d *DuplicatesHandler) Begin(total int) {
	if len(d.seen) == 0 && total > 0 {
		d.seen = make(map[string]struct{}, total)
	}
}

func (d *DuplicatesHandler) Visit(s *Snapshot, r *Report) {
	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}
	if _, ok := d.seen[s.Name]; ok {
		r.DuplicateNames = append(r.DuplicateNames, s.Name)
		return
	}
	d.seen[s.Name] = struct{}{}
}
