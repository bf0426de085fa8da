package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "booklist"

// Row results recorded by RecordRows.
const (
	RowInserted    = "inserted"
	RowOverwritten = "overwritten"
	RowSkipped     = "skipped"
)

// Metrics holds the pipeline's collectors. A nil *Metrics records nothing.
type Metrics struct {
	PagesFetched  *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	Rows          *prometheus.CounterVec
	StoreEntries  prometheus.Gauge
	StoreHeight   prometheus.Gauge
	RowsWritten   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PagesFetched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_fetched_total",
				Help:      "Total number of list pages fetched",
			},
			[]string{"status"},
		),
		FetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "List page fetch latency in seconds, including retries",
				Buckets:   prometheus.DefBuckets,
			},
		),
		Rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_total",
				Help:      "Scraped rows by dedup outcome",
			},
			[]string{"result"},
		),
		StoreEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_entries",
				Help:      "Distinct titles in the dedup store",
			},
		),
		StoreHeight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_height",
				Help:      "Longest root-to-leaf path in the dedup store",
			},
		),
		RowsWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_written_total",
				Help:      "Book rows written to the database",
			},
			[]string{"status"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.PagesFetched,
			m.FetchDuration,
			m.Rows,
			m.StoreEntries,
			m.StoreHeight,
			m.RowsWritten,
		)
	}
	return m
}

// NewRegistry returns a registry preloaded with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler exposes the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// RecordFetch records a page fetch attempt.
func (m *Metrics) RecordFetch(success bool, d time.Duration) {
	if m == nil {
		return
	}
	m.PagesFetched.WithLabelValues(status(success)).Inc()
	m.FetchDuration.Observe(d.Seconds())
}

// RecordRows adds n rows with the given result.
func (m *Metrics) RecordRows(result string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.Rows.WithLabelValues(result).Add(float64(n))
}

// SetStore sets the store gauges.
func (m *Metrics) SetStore(entries, height int) {
	if m == nil {
		return
	}
	m.StoreEntries.Set(float64(entries))
	m.StoreHeight.Set(float64(height))
}

// RecordWrite adds n rows written with the given outcome.
func (m *Metrics) RecordWrite(success bool, n int) {
	if m == nil {
		return
	}
	m.RowsWritten.WithLabelValues(status(success)).Add(float64(n))
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
