package audit

// Handler inspects one entry snapshot and records findings in the report.
// Handlers run in pipeline order, so a handler may read report fields that
// earlier handlers already updated for the same entry.
type Handler interface {
	Visit(s *Snapshot, r *Report)
}

// Beginner is implemented by handlers that want the declared entry count
// before the first visit.
type Beginner interface {
	Begin(total int)
}

// Finisher is implemented by handlers that act once after the last entry.
type Finisher interface {
	Finish(r *Report)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(s *Snapshot, r *Report)

func (f HandlerFunc) Visit(s *Snapshot, r *Report) { f(s, r) }

// Pipeline is an ordered handler sequence. One pipeline serves one scan;
// stateful handlers must not be shared between concurrent scans.
type Pipeline []Handler

// Begin notifies every Beginner.
func (p Pipeline) Begin(total int) {
	for _, h := range p {
		if b, ok := h.(Beginner); ok {
			b.Begin(total)
		}
	}
}

// Visit runs each handler on s.
func (p Pipeline) Visit(s *Snapshot, r *Report) {
	for _, h := range p {
		h.Visit(s, r)
	}
}

// Finish notifies every Finisher.
func (p Pipeline) Finish(r *Report) {
	for _, h := range p {
		if f, ok := h.(Finisher); ok {
			f.Finish(r)
		}
	}
}

// DefaultHandlers returns a fresh instance of the standard pipeline.
func DefaultHandlers() Pipeline {
	return Pipeline{
		PathHandler{},
		RatiosHandler{},
		NamesHandler{},
		EncryptionHandler{},
		NewDuplicatesHandler(),
		SymlinksHandler{},
		RecommendationsHandler{},
	}
}
