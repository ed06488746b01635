// Package metrics exposes scan counters to Prometheus.
package metrics

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/Fuabioo/zipaudit/internal/audit"
	"github.com/Fuabioo/zipaudit/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusOK labels scans that produced a report.
const StatusOK = "ok"

// Metrics records scan activity.
type Metrics interface {
	// Handler returns a pipeline handler that counts entries and findings.
	// Append it after the default handlers.
	Handler() audit.Handler
	ObserveScan(status string, durationSeconds float64)
}

// StatusOf maps a scan result to its status label: StatusOK, or the error code.
func StatusOf(err error) string {
	if err == nil {
		return StatusOK
	}
	if code := errors.Code(err); code != "" {
		return code
	}
	return "UNKNOWN"
}

// Noop implements Metrics without emitting anything.
type Noop struct{}

func (Noop) Handler() audit.Handler {
	return audit.HandlerFunc(func(*audit.Snapshot, *audit.Report) {})
}

func (Noop) ObserveScan(string, float64) {}

// Prom implements Metrics backed by Prometheus collectors.
type Prom struct {
	scans    *prometheus.CounterVec
	entries  prometheus.Counter
	findings *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewProm registers the scan collectors with reg, or with the default
// registerer when reg is nil. Collectors already present in reg are reused,
// so several Prom values on one registry share the same series.
func NewProm(namespace string, reg prometheus.Registerer) *Prom {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Prom{
		scans: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Archive scans by status",
		}, []string{"status"})),
		entries: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_scanned_total",
			Help:      "Archive entries visited by the audit pipeline",
		})),
		findings: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "findings_total",
			Help:      "Suspicious entry findings by reason",
		}, []string{"reason"})),
		duration: register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Wall time of archive scans",
			Buckets:   prometheus.DefBuckets,
		})),
	}
}

// register adds c to reg, returning the collector registered earlier under
// the same descriptor when there is one. Any other registration error panics
// like prometheus.MustRegister.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if stderrors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (p *Prom) Handler() audit.Handler {
	return &scanHandler{p: p}
}

func (p *Prom) ObserveScan(status string, durationSeconds float64) {
	p.scans.WithLabelValues(status).Inc()
	p.duration.Observe(durationSeconds)
}

// scanHandler counts entries as they are visited and findings once the
// scan completes.
type scanHandler struct {
	p *Prom
}

func (h *scanHandler) Visit(*audit.Snapshot, *audit.Report) {
	h.p.entries.Inc()
}

func (h *scanHandler) Finish(r *audit.Report) {
	for kind, n := range r.CountByKind() {
		h.p.findings.WithLabelValues(kind.String()).Add(float64(n))
	}
}

// Handler returns an HTTP handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// NewServer builds the HTTP server exposing /metrics on addr.
func NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	srv := NewServer(addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
