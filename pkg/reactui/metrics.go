package reactui

import "time"

// MetricsCollector receives instrumentation events from the scheduler and
// patch pipeline. The default is a no-op so the core has zero collection
// cost until an embedder calls SetMetricsCollector; see
// pkg/reactui/metrics for a Prometheus-backed implementation.
type MetricsCollector interface {
	// ObserveFlush records one scheduler flush: its wall-clock duration and
	// how many render watchers ran (i.e. how many components re-rendered).
	ObserveFlush(duration time.Duration, renderedCount int)

	// IncInfiniteLoopAborts counts flushes aborted by the infinite-update
	// guard (spec.md §4.4 / §8 scenario 5).
	IncInfiniteLoopAborts()

	// ObservePatch records one patch() call: its duration and the number of
	// vnodes in the new tree it reconciled.
	ObservePatch(duration time.Duration, vnodeCount int)

	// IncWatcherQueued counts every watcher handed to the scheduler, queued
	// or coalesced into an existing entry.
	IncWatcherQueued()
}

type noopMetrics struct{}

func (noopMetrics) ObserveFlush(time.Duration, int) {}
func (noopMetrics) IncInfiniteLoopAborts()          {}
func (noopMetrics) ObservePatch(time.Duration, int) {}
func (noopMetrics) IncWatcherQueued()               {}
