package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Collector owns the bracket metrics and the registry they are exposed from.
type Collector struct {
	registry      *prometheus.Registry
	buildsTotal   *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	matchesBuilt  *prometheus.CounterVec
	broadcasts    prometheus.Counter
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	c := &Collector{
		registry: registry,
		buildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "bracket_builds_total", Help: "Bracket builds by format and outcome"},
			[]string{"format", "operation", "status"},
		),
		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bracket_build_duration_seconds",
				Help:    "Time spent building and storing a bracket",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "operation"},
		),
		matchesBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "bracket_matches_built_total", Help: "Matches produced by the builders"},
			[]string{"format"},
		),
		broadcasts: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "bracket_broadcasts_total", Help: "Bracket updates pushed to websocket rooms"},
		),
	}
	registry.MustRegister(c.buildsTotal, c.buildDuration, c.matchesBuilt, c.broadcasts)
	return c
}

// ObserveBuild records one builder call. matches is ignored for failed builds.
func (c *Collector) ObserveBuild(format, operation string, matches int, err error, duration time.Duration) {
	if c == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	c.buildsTotal.WithLabelValues(format, operation, status).Inc()
	c.buildDuration.WithLabelValues(format, operation).Observe(duration.Seconds())
	if err == nil {
		c.matchesBuilt.WithLabelValues(format).Add(float64(matches))
	}
}

func (c *Collector) ObserveBroadcast() {
	if c == nil {
		return
	}
	c.broadcasts.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
