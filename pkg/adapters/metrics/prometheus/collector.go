package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UnmatchedRoute labels requests that did not match any registered route
const UnmatchedRoute = "unmatched"

// Collector records HTTP and gRPC traffic on its own registry
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge
	grpcRequests *prometheus.CounterVec
	buildInfo    *prometheus.GaugeVec
}

// NewCollector creates a collector backed by a fresh registry that also
// carries the Go runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devops_demo_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "devops_demo_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		httpInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "devops_demo_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		grpcRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devops_demo_grpc_requests_total",
				Help: "Total number of unary gRPC calls handled",
			},
			[]string{"method", "code"},
		),
		buildInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "devops_demo_build_info",
				Help: "Build information, always 1",
			},
			[]string{"version", "build_time"},
		),
	}
}

// Handler returns the exposition handler for the collector's registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// IncInFlight marks the start of an HTTP request
func (c *Collector) IncInFlight() {
	c.httpInFlight.Inc()
}

// DecInFlight marks the end of an HTTP request
func (c *Collector) DecInFlight() {
	c.httpInFlight.Dec()
}

// ObserveHTTPRequest records a completed HTTP request. An empty route is
// recorded as UnmatchedRoute to keep label cardinality bounded.
func (c *Collector) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = UnmatchedRoute
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncGRPCRequests records a completed unary gRPC call
func (c *Collector) IncGRPCRequests(method, code string) {
	c.grpcRequests.WithLabelValues(method, code).Inc()
}

// RecordBuildInfo publishes the binary's build metadata
func (c *Collector) RecordBuildInfo(version, buildTime string) {
	c.buildInfo.WithLabelValues(version, buildTime).Set(1)
}
