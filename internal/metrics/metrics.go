// Package metrics collects and exposes Prometheus metrics for the
// orchestration pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records pipeline metrics against a Prometheus registry.
type Collector struct {
	generations   *prometheus.CounterVec
	generationDur prometheus.Histogram
	historyHits   prometheus.Counter
	exports       *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vibecheck_generations_total",
			Help: "Vibe generations by outcome.",
		}, []string{"outcome"}),
		generationDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vibecheck_generation_duration_seconds",
			Help:    "End-to-end generation latency including track resolution.",
			Buckets: prometheus.DefBuckets,
		}),
		historyHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vibecheck_history_hits_total",
			Help: "Runs served from stored history instead of generation.",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vibecheck_exports_total",
			Help: "Playlist exports by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(c.generations, c.generationDur, c.historyHits, c.exports)
	return c
}

// RecordGeneration counts one generation attempt and its latency.
func (c *Collector) RecordGeneration(outcome string, duration time.Duration) {
	c.generations.WithLabelValues(outcome).Inc()
	c.generationDur.Observe(duration.Seconds())
}

// RecordHistoryHit counts a run short-circuited by stored history.
func (c *Collector) RecordHistoryHit() {
	c.historyHits.Inc()
}

// RecordExport counts one export attempt.
func (c *Collector) RecordExport(outcome string) {
	c.exports.WithLabelValues(outcome).Inc()
}

// Handler returns the scrape endpoint for the given gatherer.
func Handler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
