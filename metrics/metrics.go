// Package metrics exposes Prometheus counters for the refresh cycle and the
// HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector is what the services and middleware record into.
type MetricsCollector interface {
	RecordFetchSuccess()
	RecordFetchFailure(reason string)
	RecordFetchLatency(duration time.Duration)
	RecordDatasetSize(venues, matches int)
	RecordMalformedRecords(count int)
	RecordGeoInconsistencies(count int)
	RecordHTTPStatus(statusCode int)
	SetActiveSessions(n int)
}

// Collector is the Prometheus implementation.
type Collector struct {
	fetchSuccess       prometheus.Counter
	fetchFail          *prometheus.CounterVec
	fetchLatency       prometheus.Histogram
	datasetVenues      prometheus.Gauge
	datasetMatches     prometheus.Gauge
	malformedRecords   prometheus.Counter
	geoInconsistencies prometheus.Counter
	httpStatus         *prometheus.CounterVec
	activeSessions     prometheus.Gauge
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		fetchSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crowd_status_fetch_success_total",
			Help: "Successful status feed fetches.",
		}),
		fetchFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crowd_status_fetch_fail_total",
			Help: "Failed status feed fetches by reason.",
		}, []string{"reason"}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "crowd_status_fetch_latency_seconds",
			Help:    "Status feed fetch latency in seconds, retries included.",
			Buckets: prometheus.DefBuckets,
		}),
		datasetVenues: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crowd_status_dataset_venues",
			Help: "Venues in the current dataset.",
		}),
		datasetMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crowd_status_dataset_matches",
			Help: "Matches in the current dataset.",
		}),
		malformedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crowd_status_malformed_records_total",
			Help: "Feed records dropped as malformed.",
		}),
		geoInconsistencies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crowd_status_geo_inconsistencies_total",
			Help: "Venues whose geography disagrees with the reference tables.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crowd_status_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crowd_status_active_sessions",
			Help: "Open filter sessions.",
		}),
	}

	reg.MustRegister(
		c.fetchSuccess,
		c.fetchFail,
		c.fetchLatency,
		c.datasetVenues,
		c.datasetMatches,
		c.malformedRecords,
		c.geoInconsistencies,
		c.httpStatus,
		c.activeSessions,
	)

	return c
}

func (c *Collector) RecordFetchSuccess() {
	c.fetchSuccess.Inc()
}

func (c *Collector) RecordFetchFailure(reason string) {
	c.fetchFail.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordFetchLatency(duration time.Duration) {
	c.fetchLatency.Observe(duration.Seconds())
}

func (c *Collector) RecordDatasetSize(venues, matches int) {
	c.datasetVenues.Set(float64(venues))
	c.datasetMatches.Set(float64(matches))
}

func (c *Collector) RecordMalformedRecords(count int) {
	c.malformedRecords.Add(float64(count))
}

func (c *Collector) RecordGeoInconsistencies(count int) {
	c.geoInconsistencies.Add(float64(count))
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) SetActiveSessions(n int) {
	c.activeSessions.Set(float64(n))
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop discards everything. Used where metrics are not wired.
type Noop struct{}

func (Noop) RecordFetchSuccess()              {}
func (Noop) RecordFetchFailure(string)        {}
func (Noop) RecordFetchLatency(time.Duration) {}
func (Noop) RecordDatasetSize(int, int)       {}
func (Noop) RecordMalformedRecords(int)       {}
func (Noop) RecordGeoInconsistencies(int)     {}
func (Noop) RecordHTTPStatus(int)             {}
func (Noop) SetActiveSessions(int)            {}
