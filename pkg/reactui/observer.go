package reactui

import "sync/atomic"

var observerIDCounter uint64

// Observer is the hidden back-reference every observed container carries.
// Its Dep fires on structural changes: a new key defined on an ObservedMap,
// or an element inserted into an ObservableSlice. Per-key changes fire the
// finer-grained Dep owned by that key instead.
type Observer struct {
	id  uint64
	dep *Dep
}

func newObserver() *Observer {
	return &Observer{
		id:  atomic.AddUint64(&observerIDCounter, 1),
		dep: newDep(),
	}
}

// reactive is implemented by every type that can carry an Observer:
// ObservedMap and ObservableSlice. Observe dispatches on it so a value that
// is already observed is never wrapped twice.
type reactive interface {
	observer() *Observer
}

// Observe returns the Observer backing value, or nil if value is not an
// observable container (primitives, a *VNode, or any other plain Go value
// are never observed — see SPEC_FULL.md's data-model note on why this
// implementation only wraps *ObservedMap and *ObservableSlice rather than
// arbitrary structs via reflection).
func Observe(value any) *Observer {
	if value == nil {
		return nil
	}
	if r, ok := value.(reactive); ok {
		return r.observer()
	}
	return nil
}

func observerOf(value any) *Observer { return Observe(value) }

// dependOnContainer registers the current target watcher, if any, on both
// the container's own structural Dep and, recursively, on every element of
// an ObservableSlice's Observer-Dep — elements of a slice cannot be tracked
// key-wise, so reading the slice must depend on every element's own
// reactivity to notice a later in-place mutation of one of them.
func dependOnContainer(value any) {
	ob := observerOf(value)
	if ob == nil {
		return
	}
	ob.dep.depend()
	if seq, ok := value.(*ObservableSlice); ok {
		for i := 0; i < seq.Len(); i++ {
			dependOnContainer(seq.At(i))
		}
	}
}

// ObservedMap is the reactive form of a plain keyed container: component
// state, a data object, props storage. Each key owns a Dep created lazily
// the first time the key is defined reactive (at construction, or via Set
// for a brand new key).
type ObservedMap struct {
	ob      *Observer
	data    map[string]any
	keyDeps map[string]*Dep
	frozen  bool
}

// Reactive wraps a plain map as an ObservedMap, observing every value
// already present. A nil map is treated as empty. Calling Reactive again on
// an *ObservedMap you already hold is unnecessary — ObservedMap is already
// observed — but is safe: Observe(om) just returns its existing Observer.
func Reactive(data map[string]any) *ObservedMap {
	if data == nil {
		data = make(map[string]any)
	}
	om := &ObservedMap{
		ob:      newObserver(),
		data:    data,
		keyDeps: make(map[string]*Dep),
	}
	for k, v := range data {
		om.defineReactive(k, v)
	}
	return om
}

// Frozen returns a read-only snapshot: Set/Delete on it warn and no-op,
// matching the spec's "frozen containers are never observed" carve-out by
// making mutation through the reactive API impossible rather than skipping
// observation outright (reads still participate in dependency tracking,
// which a truly unobserved value would not support).
func Frozen(data map[string]any) *ObservedMap {
	om := Reactive(data)
	om.frozen = true
	return om
}

func (om *ObservedMap) observer() *Observer { return om.ob }

func (om *ObservedMap) defineReactive(key string, val any) {
	om.keyDeps[key] = newDep()
	Observe(val)
}

// Keys returns the current key set. Order is unspecified, matching the
// "unordered collection" character of a plain map.
func (om *ObservedMap) Keys() []string {
	keys := make([]string, 0, len(om.data))
	for k := range om.data {
		keys = append(keys, k)
	}
	return keys
}

// Has reports whether key is currently defined, without establishing a
// dependency (mirrors a plain "in" check rather than a tracked read).
func (om *ObservedMap) Has(key string) bool {
	_, ok := om.data[key]
	return ok
}

// Get reads key, registering a dependency on it (and, if the value is
// itself a container, on its structural Dep) in the current tracking
// context.
func (om *ObservedMap) Get(key string) any {
	val := om.data[key]
	if d, ok := om.keyDeps[key]; ok {
		d.depend()
		dependOnContainer(val)
	}
	return val
}

// Set writes key. A write to an existing key whose new value is equal to the
// current one by valuesEqual (deep equality, NaN equal to itself) is a
// no-op. A write to a brand-new key
// defines it reactive first, then notifies the map's structural Dep so
// subscribers that only depend on "the shape of this object" observe the
// addition — exactly like the package-level Set function, specialized for
// the common case of mutating through the map directly.
func (om *ObservedMap) Set(key string, val any) {
	if om.frozen {
		warnf("cannot set reactive property %q: target is frozen", key)
		return
	}
	d, existed := om.keyDeps[key]
	if existed {
		old := om.data[key]
		if valuesEqual(old, val) {
			return
		}
		Observe(val)
		om.data[key] = val
		d.notify()
		return
	}
	om.data[key] = val
	om.defineReactive(key, val)
	om.ob.dep.notify()
}

// Delete removes key and notifies the map's structural Dep, symmetric with
// adding a new key through Set.
func (om *ObservedMap) Delete(key string) {
	if om.frozen {
		warnf("cannot delete reactive property %q: target is frozen", key)
		return
	}
	if !om.Has(key) {
		return
	}
	delete(om.data, key)
	delete(om.keyDeps, key)
	om.ob.dep.notify()
}

// Snapshot returns a shallow copy of the underlying map without registering
// any dependency; useful for logging/debugging and for handing data to code
// outside the reactivity system.
func (om *ObservedMap) Snapshot() map[string]any {
	out := make(map[string]any, len(om.data))
	for k, v := range om.data {
		out[k] = v
	}
	return out
}

// ObservableSlice is the reactive form of an ordered sequence. Mutation
// methods perform the underlying operation, observe any newly inserted
// elements, and notify the slice's own structural Dep exactly once.
type ObservableSlice struct {
	ob    *Observer
	items []any
}

// ReactiveSlice wraps a plain slice as an ObservableSlice, observing every
// element already present.
func ReactiveSlice(items []any) *ObservableSlice {
	s := &ObservableSlice{ob: newObserver(), items: append([]any(nil), items...)}
	for _, it := range s.items {
		Observe(it)
	}
	return s
}

func (s *ObservableSlice) observer() *Observer { return s.ob }

// Len returns the element count without establishing a dependency; call
// dependOnContainer (via reading through an owning ObservedMap key, or
// Depend()) to track length/membership changes.
func (s *ObservableSlice) Len() int { return len(s.items) }

// Depend registers the current target watcher on this slice's structural
// Dep and, transitively, on every element's own reactivity.
func (s *ObservableSlice) Depend() { dependOnContainer(s) }

// At returns the element at i without registering a dependency by itself;
// pair with Depend for a tracked read, matching how ObservedMap.Get tracks
// on the caller's behalf.
func (s *ObservableSlice) At(i int) any { return s.items[i] }

// Items returns a defensive copy of the backing slice.
func (s *ObservableSlice) Items() []any { return append([]any(nil), s.items...) }

// Push appends values, observes each of them, and notifies once.
func (s *ObservableSlice) Push(values ...any) int {
	s.items = append(s.items, values...)
	for _, v := range values {
		Observe(v)
	}
	s.ob.dep.notify()
	return len(s.items)
}

// Pop removes and returns the last element, or nil if empty.
func (s *ObservableSlice) Pop() any {
	if len(s.items) == 0 {
		return nil
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	s.ob.dep.notify()
	return last
}

// Shift removes and returns the first element, or nil if empty.
func (s *ObservableSlice) Shift() any {
	if len(s.items) == 0 {
		return nil
	}
	first := s.items[0]
	s.items = s.items[1:]
	s.ob.dep.notify()
	return first
}

// Unshift prepends values, observes each, and notifies once.
func (s *ObservableSlice) Unshift(values ...any) int {
	s.items = append(append([]any(nil), values...), s.items...)
	for _, v := range values {
		Observe(v)
	}
	s.ob.dep.notify()
	return len(s.items)
}

// Splice removes count elements starting at start and inserts replacements
// in their place, observing the newly inserted elements, then notifies once.
// Matches Array.prototype.splice semantics including negative-count and
// out-of-range clamping.
func (s *ObservableSlice) Splice(start, count int, replacements ...any) []any {
	if start < 0 {
		start += len(s.items)
		if start < 0 {
			start = 0
		}
	}
	if start > len(s.items) {
		start = len(s.items)
	}
	if count < 0 {
		count = 0
	}
	if start+count > len(s.items) {
		count = len(s.items) - start
	}
	removed := append([]any(nil), s.items[start:start+count]...)

	tail := append([]any(nil), s.items[start+count:]...)
	s.items = append(s.items[:start], append(append([]any(nil), replacements...), tail...)...)

	for _, v := range replacements {
		Observe(v)
	}
	s.ob.dep.notify()
	return removed
}

// SetIndex replaces the element at i via a single-element Splice, which is
// how the spec's generic set(target, key, val) behaves for an ordered
// sequence.
func (s *ObservableSlice) SetIndex(i int, val any) {
	if i < 0 || i >= len(s.items) {
		warnf("cannot set index %d: out of range (len=%d)", i, len(s.items))
		return
	}
	s.Splice(i, 1, val)
}

// Sort sorts items in place using less, then notifies once.
func (s *ObservableSlice) Sort(less func(a, b any) bool) {
	n := len(s.items)
	for i := 1; i < n; i++ {
		for j := i; j > 0 && less(s.items[j], s.items[j-1]); j-- {
			s.items[j], s.items[j-1] = s.items[j-1], s.items[j]
		}
	}
	s.ob.dep.notify()
}

// Reverse reverses items in place, then notifies once.
func (s *ObservableSlice) Reverse() {
	for i, j := 0, len(s.items)-1; i < j; i, j = i+1, j-1 {
		s.items[i], s.items[j] = s.items[j], s.items[i]
	}
	s.ob.dep.notify()
}

// Set is the generic entry point matching spec.md's set(target, key, val):
// it adds a new reactive key to an ObservedMap, or replaces an index of an
// ObservableSlice via Splice, then notifies the owning Observer's structural
// Dep. Any other target warns and no-ops.
func Set(target any, key any, val any) {
	switch t := target.(type) {
	case *ObservedMap:
		k, ok := key.(string)
		if !ok {
			warnf("Set: key for an ObservedMap target must be a string, got %T", key)
			return
		}
		t.Set(k, val)
	case *ObservableSlice:
		i, ok := key.(int)
		if !ok {
			warnf("Set: key for an ObservableSlice target must be an int index, got %T", key)
			return
		}
		t.SetIndex(i, val)
	default:
		warnf("Set: target of type %T is not reactive; declare reactive keys up front", target)
	}
}

// Del is the generic entry point matching spec.md's del(target, key):
// symmetric with Set.
func Del(target any, key any) {
	switch t := target.(type) {
	case *ObservedMap:
		k, ok := key.(string)
		if !ok {
			warnf("Del: key for an ObservedMap target must be a string, got %T", key)
			return
		}
		t.Delete(k)
	case *ObservableSlice:
		i, ok := key.(int)
		if !ok {
			warnf("Del: key for an ObservableSlice target must be an int index, got %T", key)
			return
		}
		t.Splice(i, 1)
	default:
		warnf("Del: target of type %T is not reactive", target)
	}
}
