package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once     sync.Once
	registry *Registry
)

// Registry holds all labshare metrics.
type Registry struct {
	// API dispatcher
	APIRequests *prometheus.CounterVec
	APIDuration *prometheus.HistogramVec

	// Navigation guard
	Navigations *prometheus.CounterVec

	// Console
	PageRenders *prometheus.CounterVec
	ProxyErrors prometheus.Counter
}

// Get returns the process-wide registry, registering collectors on first use.
func Get() *Registry {
	once.Do(func() {
		registry = &Registry{
			APIRequests: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "labshare_api_requests_total",
				Help: "Requests dispatched to the platform API",
			}, []string{"endpoint", "outcome"}),
			APIDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "labshare_api_request_duration_seconds",
				Help:    "Latency of requests dispatched to the platform API",
				Buckets: prometheus.DefBuckets,
			}, []string{"endpoint"}),
			Navigations: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "labshare_navigations_total",
				Help: "Navigation attempts by route and guard decision",
			}, []string{"route", "decision"}),
			PageRenders: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "labshare_console_page_renders_total",
				Help: "Console pages rendered by route and status",
			}, []string{"route", "status"}),
			ProxyErrors: promauto.NewCounter(prometheus.CounterOpts{
				Name: "labshare_console_proxy_errors_total",
				Help: "Failed proxied API calls from the console",
			}),
		}
	})
	return registry
}

// ObserveNavigation records one guard evaluation
func (r *Registry) ObserveNavigation(route string, allowed bool) {
	decision := "allow"
	if !allowed {
		decision = "redirect"
	}
	r.Navigations.WithLabelValues(route, decision).Inc()
}
