package reactui

import (
	"fmt"
	"runtime/debug"
)

// HandlerError wraps a panic or error raised inside a user-supplied getter,
// watcher callback, or lifecycle hook, together with enough context to
// report it usefully (spec.md §7's "user-callback-error" kind).
type HandlerError struct {
	Cause     error
	Instance  *Instance
	Info      string
	Stack     []byte
}

func (e *HandlerError) Error() string {
	name := "<unnamed>"
	if e.Instance != nil {
		name = e.Instance.Name()
	}
	return fmt.Sprintf("reactui: error in %s (component %q): %v", e.Info, name, e.Cause)
}

func (e *HandlerError) Unwrap() error { return e.Cause }

// ErrorReporter is the pluggable sink for errors that reach the top of the
// parent chain without being handled by an errorCaptured hook. Left unset,
// errors are just logged via the package Logger. See pkg/reactui/observability
// for a Sentry-backed implementation.
type ErrorReporter interface {
	ReportError(err *HandlerError)
}

var globalReporter ErrorReporter

// SetErrorReporter installs the reporter HandleError falls back to once no
// ancestor's errorCaptured hook has claimed the error.
func SetErrorReporter(r ErrorReporter) { globalReporter = r }

// invokeWithErrorHandling runs fn, recovering any panic and converting both
// panics and returned errors into a routed HandlerError. Every user-supplied
// function in the core (getter, watcher callback, lifecycle hook, computed
// fn) is expected to run under this wrapper so the core never lets user code
// propagate a panic across a hook boundary.
func invokeWithErrorHandling(instance *Instance, fn func() error, info string) {
	defer func() {
		if r := recover(); r != nil {
			var cause error
			switch v := r.(type) {
			case error:
				cause = v
			default:
				cause = fmt.Errorf("%v", v)
			}
			HandleError(instance, cause, info)
		}
	}()
	if err := fn(); err != nil {
		HandleError(instance, err, info)
	}
}

// HandleError routes err up the instance's parent chain looking for an
// errorCaptured hook willing to handle it (returning true stops propagation,
// matching Vue's errorCaptured contract). If no ancestor claims it, the error
// reaches the globally configured ErrorReporter, and is always logged.
func HandleError(instance *Instance, err error, info string) {
	he := &HandlerError{Cause: err, Instance: instance, Info: info, Stack: debug.Stack()}

	cur := instance
	for cur != nil {
		for _, hook := range cur.options.ErrorCaptured {
			handled := func() (handled bool) {
				defer func() {
					if recover() != nil {
						handled = false
					}
				}()
				return hook(cur, err, info)
			}()
			if handled {
				return
			}
		}
		cur = cur.parent
	}

	warnf("unhandled error: %v", he)
	if globalReporter != nil {
		globalReporter.ReportError(he)
	}
}
