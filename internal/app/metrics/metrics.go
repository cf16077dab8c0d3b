// Package metrics содержит prometheus метрики сервиса.
// Регистрируются в реестре по умолчанию и отдаются только сервером метрик.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shortener"

var (
	LinksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "links_created_total",
		Help:      "Total number of stored short links",
	})

	Redirects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redirects_total",
		Help:      "Total number of redirects to target URLs",
	})

	LookupMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_misses_total",
		Help:      "Total number of requests for unknown shortcodes",
	})

	Conflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conflicts_total",
		Help:      "Total number of rejected shortcodes already in use",
	})

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveRequest учитывает один обслуженный запрос
func ObserveRequest(method, route string, status int, took time.Duration) {
	RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(took.Seconds())
}

// Handler отдает реестр по умолчанию
func Handler() http.Handler {
	return promhttp.Handler()
}
