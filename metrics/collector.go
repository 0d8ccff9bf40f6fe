// Package metrics exposes Ant System progress as Prometheus metrics.
//
// Each Collector owns its own registry so several runs (and tests) never
// collide on the global default registry.
package metrics

import (
	"math"
	"net/http"
	"time"

	"github.com/katalvlaran/antcolony/colony"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Skip reasons reported through ObserveSkip.
const (
	ReasonInsufficientCities = "insufficient_cities"
	ReasonError              = "error"
)

// Collector records iteration outcomes.
type Collector struct {
	registry *prometheus.Registry

	iterations    prometheus.Counter
	tours         prometheus.Counter
	improvements  prometheus.Counter
	resets        prometheus.Counter
	skipped       *prometheus.CounterVec
	bestLength    prometheus.Gauge
	iterationBest prometheus.Gauge
	iterationMean prometheus.Gauge
	cities        prometheus.Gauge
	duration      prometheus.Histogram
}

// New creates a Collector with every metric registered under namespace "antcolony".
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "antcolony", Name: "iterations_total",
			Help: "Completed Ant System iterations.",
		}),
		tours: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "antcolony", Name: "tours_total",
			Help: "Tours constructed by ants.",
		}),
		improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "antcolony", Name: "best_improvements_total",
			Help: "Iterations that replaced the best tour.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "antcolony", Name: "resets_total",
			Help: "Model resets, including city-set changes.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "antcolony", Name: "iterations_skipped_total",
			Help: "Iterations that could not run, by reason.",
		}, []string{"reason"}),
		bestLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "antcolony", Name: "best_length",
			Help: "Length of the best tour so far (+Inf if none).",
		}),
		iterationBest: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "antcolony", Name: "iteration_best_length",
			Help: "Shortest tour of the latest iteration.",
		}),
		iterationMean: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "antcolony", Name: "iteration_mean_length",
			Help: "Mean tour length of the latest iteration.",
		}),
		cities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "antcolony", Name: "cities",
			Help: "Cities in the current run.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "antcolony", Name: "iteration_duration_seconds",
			Help:    "Wall time of one iteration.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
	}

	c.registry.MustRegister(
		c.iterations, c.tours, c.improvements, c.resets, c.skipped,
		c.bestLength, c.iterationBest, c.iterationMean, c.cities, c.duration,
	)
	return c
}

// ObserveIteration records one completed RunIteration.
func (c *Collector) ObserveIteration(res colony.Result, took time.Duration) {
	if res.Tours == 0 {
		return
	}
	c.iterations.Inc()
	c.tours.Add(float64(res.Tours))
	if res.Improved {
		c.improvements.Inc()
	}
	c.bestLength.Set(res.BestLength)
	c.iterationBest.Set(res.IterationBest)
	c.iterationMean.Set(res.IterationMean)
	c.duration.Observe(took.Seconds())
}

// ObserveSkip records an iteration that did not run.
func (c *Collector) ObserveSkip(reason string) {
	c.skipped.WithLabelValues(reason).Inc()
}

// ObserveReset records a new run over cities cities.
func (c *Collector) ObserveReset(cities int) {
	c.resets.Inc()
	c.cities.Set(float64(cities))
	c.bestLength.Set(math.Inf(1))
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
