package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/haxsysgit/coursework-backend/internal/domain"
)

// APIMetrics метрики HTTP API и принятых заказов
type APIMetrics struct {
	gatherer prometheus.Gatherer

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	orders          *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
}

// New регистрирует метрики в собственном реестре вместе с go/process коллекторами
func New() *APIMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry нужен тестам и встраиванию в чужой реестр
func NewWithRegistry(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *APIMetrics {
	return &APIMetrics{
		gatherer: gatherer,
		requests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "lessons_api_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "lessons_api_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route"}),
		orders: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "lessons_api_orders_created_total",
			Help: "Total number of orders stored, by document shape",
		}, []string{"shape"}),
		rateLimited: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "lessons_api_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		}, []string{"route"}),
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordRequest учитывает завершённый HTTP-запрос
func (m *APIMetrics) RecordRequest(method, route string, status int, duration time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordOrder учитывает сохранённый заказ
func (m *APIMetrics) RecordOrder(shape domain.OrderShape) {
	m.orders.WithLabelValues(string(shape)).Inc()
}

// RecordRateLimited учитывает отклонённый лимитером запрос
func (m *APIMetrics) RecordRateLimited(route string) {
	m.rateLimited.WithLabelValues(route).Inc()
}

// Handler отдаёт метрики в формате Prometheus
func (m *APIMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
