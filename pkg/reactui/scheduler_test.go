package reactui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestScheduler_InfiniteLoopGuard covers spec.md §8 scenario 5: a watcher
// callback that writes to its own dependency must be aborted after the
// 101st iteration within one flush, with exactly one warning.
func TestScheduler_InfiniteLoopGuard(t *testing.T) {
	prevLogger := logger
	warnings := 0
	SetLogger(fakeLogger{onWarn: func(string, ...any) { warnings++ }})
	defer SetLogger(prevLogger)

	state := Reactive(map[string]any{"n": 0})

	NewWatcher(nil, func() any {
		return state.Get("n")
	}, func(any, any) {
		state.Set("n", state.Get("n").(int)+1)
	}, WatcherOptions{})

	state.Set("n", 1)
	FlushNow()

	assert.Equal(t, 1, warnings, "exactly one infinite-update-loop warning must be emitted")
}

// TestScheduler_Coalesces verifies a watcher queued twice before a flush
// only runs once.
func TestScheduler_Coalesces(t *testing.T) {
	state := Reactive(map[string]any{"a": 1})
	var runs int
	NewWatcher(nil, func() any { return state.Get("a") }, func(any, any) { runs++ }, WatcherOptions{})

	state.Set("a", 2)
	state.Set("a", 3)
	assert.Equal(t, 1, QueuedWatcherCount())
	FlushNow()
	assert.Equal(t, 1, runs)
}

// TestScheduler_FlushOrdersByID covers the scheduler-flush ordering
// invariant: for w1.id < w2.id, w1 must fully run before w2 starts.
func TestScheduler_FlushOrdersByID(t *testing.T) {
	state := Reactive(map[string]any{"a": 1})
	var order []int

	NewWatcher(nil, func() any { return state.Get("a") }, func(any, any) { order = append(order, 1) }, WatcherOptions{})
	NewWatcher(nil, func() any { return state.Get("a") }, func(any, any) { order = append(order, 2) }, WatcherOptions{})

	state.Set("a", 2)
	FlushNow()

	assert.Equal(t, []int{1, 2}, order, "watchers must run in ascending-id order within a flush")
}

type fakeLogger struct {
	onWarn func(string, ...any)
}

func (f fakeLogger) Warnf(format string, args ...any) {
	if f.onWarn != nil {
		f.onWarn(format, args...)
	}
}
func (fakeLogger) Debugf(string, ...any) {}
