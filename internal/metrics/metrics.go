// Package metrics собирает метрики Prometheus и отдаёт их на /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder - то, что сервисы и middleware пишут в метрики.
type Recorder interface {
	RecordHTTPRequest(method, route string, status int, d time.Duration)
	RecordCascadeOutcome(outcome string)
	RecordBlobUploaded(size int64)
	RecordSweep(deleted, failed int)
}

// Collector - реализация Recorder поверх Prometheus.
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	cascadeOutcomes *prometheus.CounterVec
	uploadedBytes   prometheus.Counter
	uploadedBlobs   prometheus.Counter
	sweptBlobs      *prometheus.CounterVec
}

// NewCollector создаёт Collector и регистрирует метрики в reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gophmart_http_requests_total",
			Help: "HTTP-запросы по методу, маршруту и статусу",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gophmart_http_request_duration_seconds",
			Help:    "Время обработки HTTP-запроса (сек)",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		cascadeOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gophmart_cascade_blob_deletes_total",
			Help: "Исходы каскадного удаления вложений при удалении item",
		}, []string{"outcome"}),
		uploadedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gophmart_blob_uploaded_bytes_total",
			Help: "Сумма загруженных байт",
		}),
		uploadedBlobs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gophmart_blob_uploads_total",
			Help: "Число загруженных blobs",
		}),
		sweptBlobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gophmart_sweep_blobs_total",
			Help: "Blobs, обработанные сборкой осиротевших вложений",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.cascadeOutcomes,
		c.uploadedBytes,
		c.uploadedBlobs,
		c.sweptBlobs,
	)
	return c
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) RecordCascadeOutcome(outcome string) {
	c.cascadeOutcomes.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordBlobUploaded(size int64) {
	c.uploadedBlobs.Inc()
	c.uploadedBytes.Add(float64(size))
}

func (c *Collector) RecordSweep(deleted, failed int) {
	c.sweptBlobs.WithLabelValues("deleted").Add(float64(deleted))
	c.sweptBlobs.WithLabelValues("failed").Add(float64(failed))
}

// Nop - Recorder, который ничего не пишет. Для тестов и случаев без метрик.
type Nop struct{}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Nop) RecordCascadeOutcome(string)                          {}
func (Nop) RecordBlobUploaded(int64)                             {}
func (Nop) RecordSweep(int, int)                                 {}

// Handler отдаёт метрики для скрейпа Prometheus.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
