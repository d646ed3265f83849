package reactui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReactivity_BasicRoundTrip covers spec.md §8 scenario 1.
func TestReactivity_BasicRoundTrip(t *testing.T) {
	state := Reactive(map[string]any{"a": 1})

	var calls int
	var newVal, oldVal any
	w := NewWatcher(nil, func() any { return state.Get("a") }, func(n, o any) {
		calls++
		newVal, oldVal = n, o
	}, WatcherOptions{User: true})
	require.NotNil(t, w)

	state.Set("a", 2)
	assert.Equal(t, 1, QueuedWatcherCount())
	FlushNow()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, newVal)
	assert.Equal(t, 1, oldVal)

	state.Set("a", 2)
	FlushNow()
	assert.Equal(t, 1, calls, "setting the same value again must not retrigger the callback")
}

// TestComputed_CachingAndRecompute covers spec.md §8 scenario 4.
func TestComputed_CachingAndRecompute(t *testing.T) {
	state := Reactive(map[string]any{"a": 1, "b": 2})

	var evalCount int
	sum := NewWatcher(nil, func() any {
		evalCount++
		return state.Get("a").(int) + state.Get("b").(int)
	}, nil, WatcherOptions{Lazy: true})

	read := func() int {
		if sum.dirty {
			sum.evaluate()
		}
		return sum.value.(int)
	}

	assert.Equal(t, 3, read())
	assert.Equal(t, 3, read())
	assert.Equal(t, 1, evalCount, "reading twice between flushes must evaluate once")

	state.Set("a", 10)
	assert.Equal(t, 12, read(), "reading before flush must re-evaluate lazily")
	assert.Equal(t, 2, evalCount, "the getter ran exactly twice total")

	FlushNow()
}

// TestArrayMutation_NotifiesOnce covers spec.md §8 scenario 6.
func TestArrayMutation_NotifiesOnce(t *testing.T) {
	xs := ReactiveSlice([]any{1, 2, 3})

	var calls int
	NewWatcher(nil, func() any {
		xs.Depend()
		return xs.Len()
	}, func(n, o any) { calls++ }, WatcherOptions{User: true})

	xs.Push(4)
	FlushNow()

	assert.Equal(t, 1, calls, "a single push must notify subscribers exactly once")
	assert.Equal(t, 4, xs.Len())
}

func TestWatcher_CleanupDeps(t *testing.T) {
	state := Reactive(map[string]any{"branch": true, "a": 1, "b": 2})

	w := NewWatcher(nil, func() any {
		if state.Get("branch").(bool) {
			return state.Get("a")
		}
		return state.Get("b")
	}, nil, WatcherOptions{})

	_, subscribedToA := w.deps[findDepID(state, "a")]
	assert.True(t, subscribedToA)

	state.Set("branch", false)
	w.run()

	_, stillSubscribedToA := w.deps[findDepID(state, "a")]
	assert.False(t, stillSubscribedToA, "switching branches must drop the now-unused dependency")
}

func findDepID(om *ObservedMap, key string) uint64 {
	return om.keyDeps[key].id
}
