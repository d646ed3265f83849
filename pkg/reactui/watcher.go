package reactui

import (
	"reflect"
	"sync/atomic"
)

var watcherIDCounter uint64

// WatcherOptions configures a Watcher at construction time, mirroring the
// flag set a Vue-style watcher carries: lazy (computed), sync (bypass the
// scheduler), user (wrap callback errors and route through the instance's
// error handler), deep (read every nested property so structural changes are
// tracked too).
type WatcherOptions struct {
	Lazy bool
	Sync bool
	User bool
	Deep bool

	// Expr is a human-readable label used in error messages and devtools-ish
	// introspection; it is not evaluated.
	Expr string
}

// Watcher subscribes to every Dep read while evaluating Getter, and re-runs
// Getter whenever one of those Deps fires. Exactly one Watcher evaluates at
// any instant per logical thread: the top of targetStack.
type Watcher struct {
	id     uint64
	owner  *Instance // component instance this watcher belongs to, if any
	getter func() any
	cb     func(newVal, oldVal any)
	before func()

	value any

	lazy  bool
	sync  bool
	user  bool
	deep  bool
	active bool
	dirty bool

	expr string

	deps    map[uint64]*Dep
	newDeps map[uint64]*Dep

	// isRender marks the watcher whose getter performs render()+patch() for
	// an Instance; the scheduler collects these to fire "updated" hooks in
	// reverse (child-before-parent) order after a flush.
	isRender bool
}

// NewWatcher creates a Watcher for getter with the given options. lazy
// watchers (computed values) start dirty with an undefined value and do not
// evaluate until the first evaluate().
func NewWatcher(owner *Instance, getter func() any, cb func(newVal, oldVal any), opts WatcherOptions) *Watcher {
	w := &Watcher{
		id:      atomic.AddUint64(&watcherIDCounter, 1),
		owner:   owner,
		getter:  getter,
		cb:      cb,
		lazy:    opts.Lazy,
		sync:    opts.Sync,
		user:    opts.User,
		deep:    opts.Deep,
		active:  true,
		dirty:   opts.Lazy,
		expr:    opts.Expr,
		deps:    make(map[uint64]*Dep),
		newDeps: make(map[uint64]*Dep),
	}
	if owner != nil {
		owner.watchers = append(owner.watchers, w)
	}
	if !w.lazy {
		w.value = w.get()
	}
	return w
}

// ID returns the watcher's flush-order id: scheduler flushes in ascending id
// order, which is what gives parent-before-child and
// user-watcher-before-render-watcher ordering for free (parents and user
// watchers are always constructed first).
func (w *Watcher) ID() uint64 { return w.id }

func (w *Watcher) addDep(d *Dep) {
	if _, ok := w.newDeps[d.id]; ok {
		return
	}
	w.newDeps[d.id] = d
	if _, ok := w.deps[d.id]; !ok {
		d.addSub(w)
	}
}

// cleanupDeps drops subscriptions to every Dep touched in the previous
// generation but not the one just collected, then rotates the generations.
// This is what lets a render watcher shed dependencies a branch of the tree
// no longer reads.
func (w *Watcher) cleanupDeps() {
	for id, d := range w.deps {
		if _, ok := w.newDeps[id]; !ok {
			d.removeSub(w)
		}
	}
	w.deps, w.newDeps = w.newDeps, make(map[uint64]*Dep, len(w.newDeps))
}

// get pushes this watcher as the current target, evaluates getter, and pops.
// If deep is set, the result is recursively traversed so every nested
// container's Dep is read too.
func (w *Watcher) get() (result any) {
	pushTarget(w)
	defer func() {
		popTarget()
		w.cleanupDeps()
	}()
	result = w.getter()
	if w.deep {
		traverse(result, make(map[any]bool))
	}
	return result
}

// update is called by a Dep when one of this watcher's dependencies changes.
// lazy watchers just flip dirty; sync watchers run immediately, bypassing
// the scheduler; everything else is handed to the scheduler for batching.
func (w *Watcher) update() {
	switch {
	case w.lazy:
		w.dirty = true
	case w.sync:
		w.run()
	default:
		globalScheduler.queueWatcher(w)
	}
}

// run re-evaluates the watcher and, if the value changed (or is a container,
// or deep is set), invokes the callback with (newVal, oldVal). A destroyed
// owner makes run a no-op, which is how a child torn down mid-flush is
// skipped without the scheduler needing to know about destruction.
func (w *Watcher) run() {
	if !w.active {
		return
	}
	if w.owner != nil && w.owner.destroyed {
		return
	}
	newVal := w.get()
	if !valuesEqual(newVal, w.value) || isContainerValue(newVal) || w.deep {
		old := w.value
		w.value = newVal
		if w.cb == nil {
			return
		}
		if w.user {
			invokeWithErrorHandling(w.owner, func() error {
				w.cb(newVal, old)
				return nil
			}, "callback for watcher \""+w.expr+"\"")
		} else {
			w.cb(newVal, old)
		}
	}
}

// evaluate runs get() and clears dirty; used by lazy (computed) watchers
// when their cached value is read while stale.
func (w *Watcher) evaluate() {
	w.value = w.get()
	w.dirty = false
}

// depend forwards depend() to every Dep this (lazy) watcher currently
// subscribes to, letting the enclosing render watcher see through a
// computed value to its own upstream dependencies.
func (w *Watcher) depend() {
	for _, d := range w.deps {
		d.depend()
	}
}

// teardown unsubscribes from every Dep and removes this watcher from its
// owning instance's watcher list.
func (w *Watcher) teardown() {
	if !w.active {
		return
	}
	for _, d := range w.deps {
		d.removeSub(w)
	}
	w.active = false
	if w.owner != nil {
		w.owner.removeWatcher(w)
	}
}

// valuesEqual treats NaN as equal to itself and otherwise compares with
// reflect.DeepEqual, so a distinct value with deeply equal contents (a new
// slice or struct holding the same elements) counts as unchanged.
func valuesEqual(a, b any) bool {
	if af, ok := a.(float64); ok {
		if bf, ok := b.(float64); ok && af != af && bf != bf { // both NaN
			return true
		}
	}
	return reflect.DeepEqual(a, b)
}

func isContainerValue(v any) bool {
	switch v.(type) {
	case *ObservedMap, *ObservableSlice:
		return true
	default:
		return false
	}
}

// traverse recursively reads every nested property of v so a deep watcher
// registers dependencies on the whole structure, not just its root.
// visited guards against cycles.
func traverse(v any, visited map[any]bool) {
	switch t := v.(type) {
	case *ObservedMap:
		if visited[t] {
			return
		}
		visited[t] = true
		for _, k := range t.Keys() {
			traverse(t.Get(k), visited)
		}
	case *ObservableSlice:
		if visited[t] {
			return
		}
		visited[t] = true
		for i := 0; i < t.Len(); i++ {
			traverse(t.At(i), visited)
		}
	}
}
