package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = Nop{}
)

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCascadeOutcome("deleted")
	c.RecordCascadeOutcome("deleted")
	c.RecordCascadeOutcome("not_found")
	c.RecordBlobUploaded(10)
	c.RecordBlobUploaded(5)
	c.RecordSweep(3, 1)
	c.RecordHTTPRequest(http.MethodGet, "/items", 200, 20*time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, reg, "gophmart_cascade_blob_deletes_total", "outcome", "deleted"))
	assert.Equal(t, 1.0, counterValue(t, reg, "gophmart_cascade_blob_deletes_total", "outcome", "not_found"))
	assert.Equal(t, 15.0, counterValue(t, reg, "gophmart_blob_uploaded_bytes_total", "", ""))
	assert.Equal(t, 2.0, counterValue(t, reg, "gophmart_blob_uploads_total", "", ""))
	assert.Equal(t, 3.0, counterValue(t, reg, "gophmart_sweep_blobs_total", "result", "deleted"))
	assert.Equal(t, 1.0, counterValue(t, reg, "gophmart_sweep_blobs_total", "result", "failed"))
	assert.Equal(t, 1.0, counterValue(t, reg, "gophmart_http_requests_total", "route", "/items"))
}

// counterValue ищет счётчик по имени и одной паре label=value (пустой label - без фильтра).
func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if label == "" {
				return m.GetCounter().GetValue()
			}
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{%s=%q} not found", name, label, value)
	return 0
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordCascadeOutcome("failed")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Contains(t, string(body), "gophmart_cascade_blob_deletes_total")
}
