// Package runtime drives the reactui scheduler from a bubbletea program
// loop, grounded on the teacher's runner.go Run()/Wrap() pattern: a tea.Model
// wraps a component and eliminates bubbletea boilerplate from user code.
// Here the wrapped "component" is always the reactui root Instance, and the
// loop's job narrows to spec.md §5's single suspension point: turning a
// requested scheduler flush into the next tea.Msg.
package runtime

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/coraxen/reactui/pkg/modules/attrstyle"
	"github.com/coraxen/reactui/pkg/reactui"
	"github.com/coraxen/reactui/pkg/termhost"
)

type flushRequestedMsg struct{}

// Model is a tea.Model wrapping one reactui root Instance. Only one Model
// may be live per process: reactui.SetFlushRequester installs a single
// global callback, matching the core's single-logical-thread, single
// scheduler design (spec.md §5).
type Model struct {
	instance *reactui.Instance
	flushCh  chan struct{}
	onMsg    func(*reactui.Instance, tea.Msg) tea.Cmd
	modules  []reactui.Module
}

// Option configures a Model at construction time, following the teacher's
// RunOption pattern.
type Option func(*Model)

// WithMessageHandler installs the hook Update calls for any tea.Msg that
// isn't the scheduler's own flush signal — the seam a demo application uses
// to turn a key press into an Instance.Call.
func WithMessageHandler(fn func(*reactui.Instance, tea.Msg) tea.Cmd) Option {
	return func(m *Model) { m.onMsg = fn }
}

// WithModules appends additional reactui.Module values after attrstyle's
// default one.
func WithModules(modules ...reactui.Module) Option {
	return func(m *Model) { m.modules = append(m.modules, modules...) }
}

// New mounts a root component defined by options against a fresh termhost
// box-tree, wiring the attrstyle module in by default (every terminal app
// needs attribute/style application; additional modules can be appended).
func New(options *reactui.Options, opts ...Option) *Model {
	m := &Model{flushCh: make(chan struct{}, 1), modules: []reactui.Module{attrstyle.Module()}}
	for _, opt := range opts {
		opt(m)
	}

	instance := reactui.NewRootInstance(options, termhost.Host{}, m.modules)
	m.instance = instance
	reactui.SetFlushRequester(m.requestFlush)
	instance.Mount(&termhost.Node{Tag: "root"})
	return m
}

// Instance exposes the wrapped root instance, e.g. for a caller that needs
// to dispatch an external event into the component tree via Instance.Call.
func (m *Model) Instance() *reactui.Instance { return m.instance }

func (m *Model) requestFlush() {
	select {
	case m.flushCh <- struct{}{}:
	default:
	}
}

func (m *Model) waitForFlush() tea.Cmd {
	return func() tea.Msg {
		<-m.flushCh
		return flushRequestedMsg{}
	}
}

// Init implements tea.Model: it starts the flush-waiting loop. The first
// render already happened synchronously inside New (mounting constructs the
// render-watcher, which evaluates immediately), so Init has nothing else to
// kick off.
func (m *Model) Init() tea.Cmd { return m.waitForFlush() }

// Update implements tea.Model. A flushRequestedMsg runs the pending
// scheduler flush and re-arms the wait; ctrl+c quits the program; any other
// message is passed to the handler installed by WithMessageHandler (e.g. to
// dispatch into the component tree via Instance.Call), and is ignored when
// no handler is installed.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(flushRequestedMsg); ok {
		reactui.FlushNow()
		return m, m.waitForFlush()
	}
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.onMsg != nil {
		return m, m.onMsg(m.instance, msg)
	}
	return m, nil
}

// View implements tea.Model by rendering the instance's bound termhost node.
func (m *Model) View() string {
	node, _ := m.instance.Element().(*termhost.Node)
	return termhost.Render(node)
}

// Run is the Run() convenience wrapper the teacher's runner.go offers:
// build a Model from options and block until the bubbletea program exits.
func Run(options *reactui.Options, opts []Option, teaOpts ...tea.ProgramOption) error {
	m := New(options, opts...)
	_, err := tea.NewProgram(m, teaOpts...).Run()
	return err
}
