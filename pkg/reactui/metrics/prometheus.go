// Package metrics adapts reactui's MetricsCollector to Prometheus, grounded
// on the teacher's pkg/bubbly/monitoring prometheus.go: a struct of
// pre-registered collectors built once against a Registerer, all metrics
// prefixed to avoid collisions with whatever else shares the registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/coraxen/reactui/pkg/reactui"
)

// PrometheusCollector implements reactui.MetricsCollector.
type PrometheusCollector struct {
	flushDuration      prometheus.Histogram
	renderedPerFlush   prometheus.Histogram
	infiniteLoopAborts prometheus.Counter
	patchDuration      prometheus.Histogram
	patchVNodeCount    prometheus.Histogram
	watchersQueued     prometheus.Counter
}

// NewPrometheusCollector builds and registers every metric against reg. Like
// the teacher's constructor, registration failure (e.g. a duplicate metric
// name on a shared registry) panics — fail fast at startup rather than run
// with half-registered instrumentation.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		flushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reactui_scheduler_flush_duration_seconds",
			Help:    "Duration of each scheduler flush.",
			Buckets: prometheus.DefBuckets,
		}),
		renderedPerFlush: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reactui_scheduler_rendered_watchers",
			Help:    "Number of render-watchers that ran per flush.",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
		}),
		infiniteLoopAborts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reactui_scheduler_infinite_loop_aborts_total",
			Help: "Total number of flushes aborted by the infinite-update-loop guard.",
		}),
		patchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reactui_patch_duration_seconds",
			Help:    "Duration of each patch() call.",
			Buckets: prometheus.DefBuckets,
		}),
		patchVNodeCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reactui_patch_vnode_count",
			Help:    "Number of vnodes in the new tree reconciled by each patch() call.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512},
		}),
		watchersQueued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reactui_scheduler_watchers_queued_total",
			Help: "Total number of watchers handed to the scheduler, including coalesced re-queues.",
		}),
	}

	reg.MustRegister(
		c.flushDuration,
		c.renderedPerFlush,
		c.infiniteLoopAborts,
		c.patchDuration,
		c.patchVNodeCount,
		c.watchersQueued,
	)
	return c
}

func (c *PrometheusCollector) ObserveFlush(duration time.Duration, renderedCount int) {
	c.flushDuration.Observe(duration.Seconds())
	c.renderedPerFlush.Observe(float64(renderedCount))
}

func (c *PrometheusCollector) IncInfiniteLoopAborts() { c.infiniteLoopAborts.Inc() }

func (c *PrometheusCollector) ObservePatch(duration time.Duration, vnodeCount int) {
	c.patchDuration.Observe(duration.Seconds())
	c.patchVNodeCount.Observe(float64(vnodeCount))
}

func (c *PrometheusCollector) IncWatcherQueued() { c.watchersQueued.Inc() }

var _ reactui.MetricsCollector = (*PrometheusCollector)(nil)
