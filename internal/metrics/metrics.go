package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so tests and multiple servers in one
// process do not collide. A nil *Recorder is a no-op.
type Recorder struct {
	reg *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	solves          *prometheus.CounterVec
	solveDuration   *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		reg: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_solves_total",
			Help: "Roster optimizations by solver and outcome.",
		}, []string{"solver", "outcome"}),
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roster_solve_duration_seconds",
			Help:    "Roster optimization latency.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"solver"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_cache_lookups_total",
			Help: "Result cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests, r.requestDuration, r.solves, r.solveDuration, r.cacheLookups,
	)
	return r
}

// RecordRequest counts one served HTTP request.
func (r *Recorder) RecordRequest(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordSolve counts one optimization; outcome is "ok" or an error code.
func (r *Recorder) RecordSolve(solver, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.solves.WithLabelValues(solver, outcome).Inc()
	r.solveDuration.WithLabelValues(solver).Observe(d.Seconds())
}

func (r *Recorder) RecordCacheLookup(result string) {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
