package reactui

import (
	"sync/atomic"

	"github.com/google/uuid"
)

var instanceIDCounter uint64

// Instance is a live component: merged options, parent/children links
// forming the component tree, reactive state, a render watcher, and status
// flags. It is the core's "component instance" from spec.md §3.
type Instance struct {
	id   uint64
	uuid string
	name string

	options *Options
	parent  *Instance
	children []*Instance

	// placeholder is the vnode in the *enclosing* component's render output
	// that stands in for this instance (nil for the root instance).
	placeholder *VNode
	// vnode is this instance's own most recently rendered root vnode.
	vnode *VNode

	renderWatcher *Watcher
	watchers      []*Watcher

	mounted        bool
	destroyed      bool
	beingDestroyed bool

	props *ObservedMap
	data  *ObservedMap

	computedWatchers map[string]*Watcher
	provided         map[string]any
	injected         map[string]any

	elNode any // the live host node, once mounted

	host    Host
	patch   PatchFunc
	h       *H
}

// NewRootInstance creates the single root component instance of an
// application: it resolves options, wires a Host and Modules into a patch
// function, and runs through the full _init order from spec.md §4.6,
// stopping short of mounting (call Mount to attach to the host).
func NewRootInstance(options *Options, host Host, modules []Module) *Instance {
	return newInstance(options, nil, nil, nil, host, NewPatchFunction(host, modules))
}

func newInstance(options *Options, parent *Instance, placeholder *VNode, propsData map[string]any, host Host, patch PatchFunc) *Instance {
	instance := &Instance{
		id:          atomic.AddUint64(&instanceIDCounter, 1),
		uuid:        uuid.NewString(),
		options:     options,
		parent:      parent,
		placeholder: placeholder,
		host:        host,
		patch:       patch,
	}
	if instance.host == nil && parent != nil {
		instance.host = parent.host
	}
	if instance.patch == nil && parent != nil {
		instance.patch = parent.patch
	}
	instance.h = &H{owner: instance}

	initLifecycle(instance)
	initEvents(instance)
	initRender(instance)
	callHook(instance, hookBeforeCreate)
	initInjections(instance)
	initState(instance, propsData)
	initProvide(instance)
	callHook(instance, hookCreated)

	return instance
}

// ID returns the instance's internal flush-ordering id: smaller ids were
// created earlier, which is what gives "parents update before children" for
// free once the scheduler sorts its queue by watcher id (a watcher's id is
// itself allocated in creation order, and a child's watchers are always
// allocated after its parent's).
func (i *Instance) ID() uint64 { return i.id }

// UUID returns an opaque, globally-unique id suitable for external
// correlation (logs, breadcrumbs, devtools) — unlike ID, it carries no
// ordering meaning.
func (i *Instance) UUID() string { return i.uuid }

func (i *Instance) Name() string {
	if i.name != "" {
		return i.name
	}
	if i.options != nil && i.options.Name != "" {
		return i.options.Name
	}
	return "<anonymous>"
}

func (i *Instance) Parent() *Instance    { return i.parent }
func (i *Instance) Children() []*Instance { return append([]*Instance(nil), i.children...) }
func (i *Instance) Mounted() bool        { return i.mounted }
func (i *Instance) Destroyed() bool      { return i.destroyed }

// Element returns the live host node bound to this instance's root vnode,
// once mounted; nil before the first render.
func (i *Instance) Element() any { return i.elNode }

func initLifecycle(instance *Instance) {
	if instance.parent != nil && !instance.parent.beingDestroyed {
		instance.parent.children = append(instance.parent.children, instance)
	}
}

// initEvents is a deliberate no-op: the event-emitter interface on
// components is an out-of-scope external collaborator per spec.md §1.
func initEvents(instance *Instance) {}

func initRender(instance *Instance) {
	// Nothing to precompute beyond the bound vnode factory (instance.h),
	// already constructed in newInstance.
}

func (i *Instance) removeWatcher(w *Watcher) {
	for idx, ww := range i.watchers {
		if ww == w {
			i.watchers = append(i.watchers[:idx], i.watchers[idx+1:]...)
			return
		}
	}
}

func (i *Instance) removeChild(child *Instance) {
	for idx, c := range i.children {
		if c == child {
			i.children = append(i.children[:idx], i.children[idx+1:]...)
			return
		}
	}
}
