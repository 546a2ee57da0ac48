// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts HTTP traffic, discovery queries and swept events.
type Collector struct {
	requestsTotal *prometheus.CounterVec
	searchesTotal prometheus.Counter
	sweptTotal    prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campuspulse_http_requests_total",
			Help: "HTTP requests served, by method and status code.",
		}, []string{"method", "status"}),
		searchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campuspulse_search_queries_total",
			Help: "Discovery queries executed.",
		}),
		sweptTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campuspulse_events_swept_total",
			Help: "Expired events removed by the sweeper.",
		}),
	}
	reg.MustRegister(c.requestsTotal, c.searchesTotal, c.sweptTotal)
	return c
}

// RecordRequest counts one served HTTP request.
func (c *Collector) RecordRequest(method string, status int) {
	c.requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// RecordSearch counts one discovery query.
func (c *Collector) RecordSearch() {
	c.searchesTotal.Inc()
}

// RecordSwept counts events removed by the expiry sweeper.
func (c *Collector) RecordSwept(n int64) {
	c.sweptTotal.Add(float64(n))
}

// Handler exposes the registry for scraping.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Middleware counts every request passing through the router.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		c.RecordRequest(r.Method, rec.status)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
