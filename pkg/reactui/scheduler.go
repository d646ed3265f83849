package reactui

import (
	"sort"
	"time"
)

// maxUpdateCount bounds how many times a single watcher may run within one
// flush before the scheduler assumes a write-in-callback cycle and aborts,
// matching spec.md §4.4's "warn about an infinite update loop and break".
const maxUpdateCount = 100

// scheduler batches watcher notifications into a single flush. It has no
// locks: per spec.md §5 the core is single-threaded cooperative, and every
// mutation of queue/has/flushing/index happens on the one logical thread
// driving writes, flushes, and nested lifecycle callbacks.
type scheduler struct {
	queue    []*Watcher
	has      map[uint64]bool
	circular map[uint64]int
	waiting  bool
	flushing bool
	index    int

	// onRequestFlush, if set, is invoked the first time a flush is requested
	// in an otherwise-idle tick; a host (e.g. pkg/runtime's bubbletea
	// integration) uses it to arrange for FlushNow to be called on the next
	// tick of its own event loop. Left nil, a caller must invoke FlushNow
	// itself (what the test suite and a bare synchronous host do).
	onRequestFlush func()

	metrics MetricsCollector
}

var globalScheduler = newScheduler()

func newScheduler() *scheduler {
	return &scheduler{
		has:     make(map[uint64]bool),
		metrics: noopMetrics{},
	}
}

// SetMetricsCollector wires a MetricsCollector into the scheduler and patch
// pipeline. The default is a no-op collector, so the core carries zero
// Prometheus cost until an embedder opts in.
func SetMetricsCollector(c MetricsCollector) {
	if c == nil {
		c = noopMetrics{}
	}
	globalScheduler.metrics = c
}

// SetFlushRequester installs the callback a host uses to learn "a flush is
// now pending"; see scheduler.onRequestFlush.
func SetFlushRequester(fn func()) {
	globalScheduler.onRequestFlush = fn
}

// queueWatcher enqueues w for the next flush. A watcher already queued is
// deduplicated; if called mid-flush for a watcher not already waiting (e.g.
// one that has already run in this flush), the watcher is spliced in ahead of any
// already-processed entries but in id order among the unprocessed tail, so
// a watcher woken by another watcher's side effects still runs in this same
// flush, in the correct relative order.
func (s *scheduler) queueWatcher(w *Watcher) {
	s.metrics.IncWatcherQueued()
	id := w.id
	if s.has[id] {
		return
	}
	s.has[id] = true
	if !s.flushing {
		s.queue = append(s.queue, w)
	} else {
		s.spliceIntoQueue(w)
	}
	if !s.waiting {
		s.waiting = true
		if s.onRequestFlush != nil {
			s.onRequestFlush()
		}
	}
}

func (s *scheduler) spliceIntoQueue(w *Watcher) {
	i := len(s.queue) - 1
	for i > s.index && s.queue[i].id > w.id {
		i--
	}
	s.queue = append(s.queue, nil)
	copy(s.queue[i+2:], s.queue[i+1:])
	s.queue[i+1] = w
}

// FlushNow runs a pending flush, if one is waiting; otherwise it is a no-op.
// This is the scheduler's stand-in for "the next microtask": a bare
// synchronous host or a test calls it explicitly, while pkg/runtime's
// bubbletea integration calls it from Update whenever a flush-request
// message arrives.
func FlushNow() { globalScheduler.flush() }

// QueuedWatcherCount reports how many distinct watchers are currently queued
// for the next flush; mainly useful for tests asserting coalescing.
func QueuedWatcherCount() int { return len(globalScheduler.has) }

func (s *scheduler) flush() {
	if !s.waiting {
		return
	}
	start := time.Now()
	s.flushing = true

	sort.Slice(s.queue, func(i, j int) bool { return s.queue[i].id < s.queue[j].id })

	var updated []*Watcher
	s.circular = make(map[uint64]int)
	aborted := false

	for s.index = 0; s.index < len(s.queue); s.index++ {
		w := s.queue[s.index]
		if w == nil {
			continue
		}
		delete(s.has, w.id)
		if w.before != nil {
			w.before()
		}
		w.run()

		s.circular[w.id]++
		if s.circular[w.id] > maxUpdateCount {
			warnf("infinite update loop detected in watcher %d (%s); aborting flush", w.id, w.expr)
			s.metrics.IncInfiniteLoopAborts()
			aborted = true
			break
		}

		if w.isRender {
			updated = append(updated, w)
		}
	}

	s.resetState()
	s.metrics.ObserveFlush(time.Since(start), len(updated))
	callUpdatedHooks(updated)

	if aborted {
		return
	}
}

func (s *scheduler) resetState() {
	s.queue = s.queue[:0]
	s.has = make(map[uint64]bool)
	s.circular = nil
	s.waiting = false
	s.flushing = false
	s.index = 0
}

// callUpdatedHooks fires "updated" on every instance whose render watcher
// ran this flush, in reverse of the order the watchers ran — since watchers
// run parent-before-child (ascending id), iterating updated in reverse
// visits children before their parent, matching spec.md's scenario 2.
func callUpdatedHooks(updated []*Watcher) {
	for i := len(updated) - 1; i >= 0; i-- {
		w := updated[i]
		if w.owner == nil || w.owner.destroyed {
			continue
		}
		callHook(w.owner, hookUpdated)
	}
}
