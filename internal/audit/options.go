package audit

import "log/slog"

type options struct {
	handlers []Handler
	extra    []Handler
	logger   *slog.Logger
}

// Option configures a scan.
type Option func(*options)

// WithHandlers replaces the default pipeline. The handlers serve a single
// scan; build new instances for every call.
func WithHandlers(h ...Handler) Option {
	return func(o *options) {
		o.handlers = h
	}
}

// WithExtraHandlers appends handlers after the pipeline.
func WithExtraHandlers(h ...Handler) Option {
	return func(o *options) {
		o.extra = append(o.extra, h...)
	}
}

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

func (o *options) pipeline() Pipeline {
	var p Pipeline
	if o.handlers != nil {
		p = append(p, o.handlers...)
	} else {
		p = DefaultHandlers()
	}
	return append(p, o.extra...)
}
