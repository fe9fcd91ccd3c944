package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ MetricsCollector = (*Collector)(nil)
	_ MetricsCollector = Noop{}
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordFetchSuccess()
	c.RecordFetchSuccess()
	c.RecordFetchFailure("timeout")
	c.RecordFetchLatency(150 * time.Millisecond)
	c.RecordDatasetSize(3, 7)
	c.RecordMalformedRecords(2)
	c.RecordGeoInconsistencies(1)
	c.RecordHTTPStatus(http.StatusOK)
	c.SetActiveSessions(4)

	body := scrape(t, reg)
	for _, line := range []string{
		"crowd_status_fetch_success_total 2",
		`crowd_status_fetch_fail_total{reason="timeout"} 1`,
		"crowd_status_fetch_latency_seconds_count 1",
		"crowd_status_dataset_venues 3",
		"crowd_status_dataset_matches 7",
		"crowd_status_malformed_records_total 2",
		"crowd_status_geo_inconsistencies_total 1",
		`crowd_status_http_status_total{status_code="200"} 1`,
		"crowd_status_active_sessions 4",
	} {
		assert.Contains(t, body, line)
	}
}

func TestNewCollector_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)
	assert.Panics(t, func() { NewCollector(reg) })
}
