package reactui

import (
	"strconv"
	"strings"
)

// WatchOptions configures Instance.Watch; see spec.md §6's $watch contract.
type WatchOptions struct {
	Immediate bool
	Deep      bool
	Sync      bool
}

// WatchHandler is the callback shape every $watch registration uses.
type WatchHandler func(instance *Instance, newVal, oldVal any)

// Watch implements the $watch(expOrFn, handler, options) contract:
// expOrFn may be a getter function or a dotted-path string (bracket syntax
// is rejected with a warning, matching spec.md §6's "simple parser").
// Returns a disposer that tears the underlying watcher down.
func (i *Instance) Watch(expOrFn any, handler WatchHandler, opts WatchOptions) func() {
	if handler == nil {
		warnf("$watch: nil handler for %v", expOrFn)
		return func() {}
	}
	getter, err := resolveWatchGetter(i, expOrFn)
	if err != nil {
		warnf("$watch: %v", err)
		return func() {}
	}

	w := NewWatcher(i, getter, func(newVal, oldVal any) {
		handler(i, newVal, oldVal)
	}, WatcherOptions{
		Sync: opts.Sync,
		Deep: opts.Deep,
		User: true,
		Expr: watchExprLabel(expOrFn),
	})

	if opts.Immediate {
		invokeWithErrorHandling(i, func() error {
			handler(i, w.value, nil)
			return nil
		}, "immediate $watch callback")
	}

	return w.teardown
}

func watchExprLabel(expOrFn any) string {
	if s, ok := expOrFn.(string); ok {
		return s
	}
	return "<function>"
}

func resolveWatchGetter(i *Instance, expOrFn any) (func() any, error) {
	switch v := expOrFn.(type) {
	case func(*Instance) any:
		return func() any { return v(i) }, nil
	case string:
		path, err := parseWatchPath(v)
		if err != nil {
			return nil, err
		}
		return func() any { return readWatchPath(i, path) }, nil
	default:
		return nil, errUnsupportedWatchExpr
	}
}

var errUnsupportedWatchExpr = errUnsupportedWatchExprType{}

type errUnsupportedWatchExprType struct{}

func (errUnsupportedWatchExprType) Error() string {
	return "expOrFn must be a func(*Instance) any or a dotted-path string"
}

// parseWatchPath rejects bracket syntax (the spec's simple parser does not
// support it) and splits on '.'.
func parseWatchPath(path string) ([]string, error) {
	if strings.ContainsAny(path, "[]") {
		return nil, errBracketSyntax
	}
	if path == "" {
		return nil, errEmptyPath
	}
	return strings.Split(path, "."), nil
}

var errBracketSyntax = pathError("bracket syntax is not supported in watch paths")
var errEmptyPath = pathError("watch path must not be empty")

type pathError string

func (e pathError) Error() string { return string(e) }

// readWatchPath walks a dotted path starting from the instance's data, then
// its props, drilling through ObservedMap and ObservableSlice values.
func readWatchPath(i *Instance, path []string) any {
	var cur any
	first := path[0]
	switch {
	case i.data.Has(first):
		cur = i.data.Get(first)
	case i.props.Has(first):
		cur = i.props.Get(first)
	default:
		warnf("watch path %q: no such data or prop %q", strings.Join(path, "."), first)
		return nil
	}
	for _, seg := range path[1:] {
		switch c := cur.(type) {
		case *ObservedMap:
			cur = c.Get(seg)
		case *ObservableSlice:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= c.Len() {
				warnf("watch path %q: invalid slice index %q", strings.Join(path, "."), seg)
				return nil
			}
			c.Depend()
			cur = c.At(idx)
		case nil:
			return nil
		default:
			warnf("watch path %q: cannot descend into non-container value at %q", strings.Join(path, "."), seg)
			return nil
		}
	}
	return cur
}
