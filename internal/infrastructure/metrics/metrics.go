// Package metrics exposes Prometheus metrics for the HTTP API, product events
// and spreadsheet imports.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "inventrack"

// Metrics owns a private registry and every collector of the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	productsCreated *prometheus.CounterVec
	productUpdates  *prometheus.CounterVec
	salesRecorded   prometheus.Counter
	unitsSold       prometheus.Counter
	revenue         prometheus.Counter
	rowsImported    prometheus.Counter
	rowsSkipped     prometheus.Counter
}

// New creates the registry and registers all collectors. withRuntime adds
// the Go runtime and process collectors.
func New(withRuntime bool) *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		productsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_created_total",
			Help:      "Products created, by category.",
		}, []string{"category"}),
		productUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_updates_total",
			Help:      "Product updates by kind (restock, sale_adjustment, metadata).",
		}, []string{"kind"}),
		salesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_recorded_total",
			Help:      "Ledger entries appended.",
		}),
		unitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_sold_total",
			Help:      "Units sold across all ledger entries.",
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_revenue_total",
			Help:      "Revenue booked by sales, in store currency.",
		}),
		rowsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_imported_total",
			Help:      "Spreadsheet rows stored by the importer.",
		}),
		rowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_skipped_total",
			Help:      "Spreadsheet rows the importer skipped.",
		}),
	}

	registry.MustRegister(
		m.requestsTotal, m.requestDuration,
		m.productsCreated, m.productUpdates,
		m.salesRecorded, m.unitsSold, m.revenue,
		m.rowsImported, m.rowsSkipped,
	)
	if withRuntime {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	return m
}

// Registry exposes the registry, e.g. for writing a textfile.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records count and latency per matched gin route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// ProductCreated implements product.Metrics.
func (m *Metrics) ProductCreated(category string) {
	if m == nil {
		return
	}
	m.productsCreated.WithLabelValues(category).Inc()
}

// ProductUpdated implements product.Metrics.
func (m *Metrics) ProductUpdated(kind string) {
	if m == nil {
		return
	}
	m.productUpdates.WithLabelValues(kind).Inc()
}

// SaleRecorded implements product.Metrics.
func (m *Metrics) SaleRecorded(units int64, revenue float64) {
	if m == nil {
		return
	}
	m.salesRecorded.Inc()
	m.unitsSold.Add(float64(units))
	if revenue > 0 {
		m.revenue.Add(revenue)
	}
}

// RowsImported implements importer.Metrics.
func (m *Metrics) RowsImported(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rowsImported.Add(float64(n))
}

// RowsSkipped implements importer.Metrics.
func (m *Metrics) RowsSkipped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rowsSkipped.Add(float64(n))
}

// WriteTextfile writes the current values in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
