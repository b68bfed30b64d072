// Package metrics exposes Prometheus counters for the HTTP layer, follow
// graph transitions and visibility decisions.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder là interface mà middleware và services dùng để ghi metrics
type Recorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	RecordFollowTransition(transition string)
	RecordAccessDenied(resource string)
	RecordEntriesFiltered(candidates, visible int)
}

// Follow transitions
const (
	TransitionRequested  = "requested"
	TransitionAccepted   = "accepted"
	TransitionDeclined   = "declined"
	TransitionUnfollowed = "unfollowed"
)

// Collector là Prometheus implementation của Recorder
type Collector struct {
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	followTransition *prometheus.CounterVec
	accessDenied     *prometheus.CounterVec
	entriesHidden    prometheus.Counter
	entriesReturned  prometheus.Counter
}

var _ Recorder = (*Collector)(nil)

// NewCollector tạo Collector và register vào reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookjournal_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookjournal_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		followTransition: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookjournal_follow_transitions_total",
			Help: "Follow request lifecycle transitions",
		}, []string{"transition"}),
		accessDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookjournal_access_denied_total",
			Help: "Views answered with not found because the viewer may not see the resource",
		}, []string{"resource"}),
		entriesHidden: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookjournal_entries_hidden_total",
			Help: "Candidate entries removed by the visibility filter",
		}),
		entriesReturned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookjournal_entries_returned_total",
			Help: "Entries returned by listings after visibility filtering",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.followTransition,
		c.accessDenied,
		c.entriesHidden,
		c.entriesReturned,
	)
	return c
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordFollowTransition(transition string) {
	c.followTransition.WithLabelValues(transition).Inc()
}

func (c *Collector) RecordAccessDenied(resource string) {
	c.accessDenied.WithLabelValues(resource).Inc()
}

func (c *Collector) RecordEntriesFiltered(candidates, visible int) {
	if hidden := candidates - visible; hidden > 0 {
		c.entriesHidden.Add(float64(hidden))
	}
	c.entriesReturned.Add(float64(visible))
}

// Handler trả về HTTP handler cho Prometheus scrape
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop bỏ qua mọi metric, dùng khi METRICS_ENABLED=false và trong tests
type Nop struct{}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Nop) RecordFollowTransition(string) {}
func (Nop) RecordAccessDenied(string) {}
func (Nop) RecordEntriesFiltered(int, int) {}
