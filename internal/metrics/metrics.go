// Package metrics собирает метрики Prometheus для портала.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор счётчиков портала на собственном реестре.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	OrdersCreated    prometheus.Counter
	CustomersCreated prometheus.Counter
	SellersCreated   prometheus.Counter
	OrdersExpired    prometheus.Counter
	LoginFailures    prometheus.Counter
}

// New регистрирует все метрики в новом реестре.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_orders_created_total",
			Help: "Subscription orders created by sellers.",
		}),
		CustomersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_customers_created_total",
			Help: "Customers created by sellers.",
		}),
		SellersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_sellers_created_total",
			Help: "Seller accounts created by admins.",
		}),
		OrdersExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_orders_expired_total",
			Help: "Orders moved to Expired on read.",
		}),
		LoginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_login_failures_total",
			Help: "Rejected login attempts.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.OrdersCreated,
		m.CustomersCreated,
		m.SellersCreated,
		m.OrdersExpired,
		m.LoginFailures,
	)
	return m
}

// Handler отдаёт метрики реестра в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает реестр метрик.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware считает запросы и их длительность. Метка route берётся из шаблона маршрута chi,
// чтобы идентификаторы в пути не раздували кардинальность.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
