// Package observability wires reactui's central error pipeline to Sentry,
// adapted from the teacher's sentry_reporter.go: same Hub-based reporter and
// functional-option construction, retargeted at reactui.HandlerError instead
// of a bespoke panic-context struct.
package observability

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/coraxen/reactui/pkg/reactui"
)

// SentryReporter reports reactui.HandlerError values to Sentry via a Hub,
// matching the teacher's thread-safe, WithScope-per-event design (kept even
// though this core's own state is single-threaded, since Sentry's client is
// used from host/runtime goroutines too).
type SentryReporter struct {
	hub *sentry.Hub
}

// Option configures the Sentry client during NewSentryReporter.
type Option func(*sentry.ClientOptions)

// WithDebug enables Sentry's own debug logging.
func WithDebug(debug bool) Option {
	return func(o *sentry.ClientOptions) { o.Debug = debug }
}

// WithEnvironment tags every event with environment.
func WithEnvironment(environment string) Option {
	return func(o *sentry.ClientOptions) { o.Environment = environment }
}

// WithRelease tags every event with release.
func WithRelease(release string) Option {
	return func(o *sentry.ClientOptions) { o.Release = release }
}

// WithBeforeSend installs a BeforeSend filter/mutator hook.
func WithBeforeSend(fn func(*sentry.Event, *sentry.EventHint) *sentry.Event) Option {
	return func(o *sentry.ClientOptions) { o.BeforeSend = fn }
}

// NewSentryReporter initializes the Sentry SDK against dsn (an empty dsn
// disables sending, useful in tests) and returns a reporter ready to pass
// to reactui.SetErrorReporter.
func NewSentryReporter(dsn string, opts ...Option) (*SentryReporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&clientOpts)
	}
	if err := sentry.Init(clientOpts); err != nil {
		return nil, fmt.Errorf("observability: sentry init: %w", err)
	}
	return &SentryReporter{hub: sentry.CurrentHub()}, nil
}

// ReportError implements reactui.ErrorReporter.
func (r *SentryReporter) ReportError(err *reactui.HandlerError) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		name := "<unnamed>"
		var id uint64
		if err.Instance != nil {
			name = err.Instance.Name()
			id = err.Instance.ID()
		}
		scope.SetTag("component", name)
		scope.SetTag("component_id", fmt.Sprintf("%d", id))
		scope.SetTag("info", err.Info)
		scope.SetExtra("stack", string(err.Stack))
		r.hub.CaptureException(err.Cause)
	})
}

// Flush blocks until pending events are sent or timeout elapses.
func (r *SentryReporter) Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
