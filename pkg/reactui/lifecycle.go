package reactui

// activeInstance is the process-global "active instance" pointer from
// spec.md §4.6: set to self by _update for the duration of render+patch, so
// a child instantiated mid-patch (in createElm) can discover its parent via
// currentActiveInstance() without patch/createElm needing an extra
// parameter threaded through every call. Restored on return, including
// through panics recovered by invokeWithErrorHandling.
var activeInstance *Instance

func setActiveInstance(i *Instance) *Instance {
	prev := activeInstance
	activeInstance = i
	return prev
}

func restoreActiveInstance(prev *Instance) { activeInstance = prev }

func currentActiveInstance() *Instance { return activeInstance }

// Mount attaches instance to the host, constructing its render-watcher and
// running the first render+patch. el is accepted but not used: the first
// render builds a fresh host node (see Element) and neither inserts it
// under el nor patches el itself. Component children are always mounted
// without one, since their root element is produced entirely by their own
// render output.
func (i *Instance) Mount(el any) *Instance {
	return mountComponent(i, el)
}

// mountComponent is `$mount`/`mountComponent` from spec.md §4.6: fires
// beforeMount, builds the render-watcher (whose getter performs
// _update(_render())), and fires mounted. For a root instance mounted fires
// immediately; for a component instantiated by createElm it fires here too,
// but because createComponentElm runs to completion (including this call)
// before control returns to the parent's own createElm, descendants always
// finish mounting — and fire their own `mounted` — before their parent does,
// giving the same bottom-up order spec.md describes via an insert-hook
// queue, without this implementation needing one.
func mountComponent(instance *Instance, el any) *Instance {
	callHook(instance, hookBeforeMount)

	instance.renderWatcher = NewWatcher(instance, func() any {
		instance.update(instance.render())
		return nil
	}, nil, WatcherOptions{Expr: "render of " + instance.Name()})
	instance.renderWatcher.isRender = true
	instance.renderWatcher.before = func() {
		if instance.mounted && !instance.destroyed {
			callHook(instance, hookBeforeUpdate)
		}
	}

	instance.mounted = true
	callHook(instance, hookMounted)
	return instance
}

// render is `_render()`: selects the merged render function (or an empty
// comment-vnode fallback), invokes it with the instance as context and its
// bound vnode factory, and returns the resulting root vnode. Reads of
// reactive state inside Render subscribe the render-watcher currently on
// top of the target stack (this call always runs from inside
// Watcher.get, so that target is instance.renderWatcher).
func (i *Instance) render() *VNode {
	if i.options.Render == nil {
		return &VNode{IsComment: true, Text: "empty render"}
	}
	var vnode *VNode
	invokeWithErrorHandling(i, func() error {
		vnode = i.options.Render(i, i.h)
		return nil
	}, "render function")
	if vnode == nil {
		vnode = &VNode{IsComment: true, Text: "empty render"}
	}
	vnode.Parent = i.placeholder
	return vnode
}

// update is `_update(newVnode)`: records the previous vnode, sets the
// active-instance pointer to self for the duration (restored on return so a
// child's initLifecycle can discover its parent), and patches the previous
// tree (or nothing, on first render) against newVnode.
func (i *Instance) update(newVnode *VNode) {
	prevVnode := i.vnode
	prevActive := setActiveInstance(i)
	defer restoreActiveInstance(prevActive)

	i.vnode = newVnode
	if i.patch == nil {
		return
	}
	if prevVnode == nil {
		i.elNode = i.patch(nil, newVnode, false, false)
	} else {
		i.elNode = i.patch(prevVnode, newVnode, false, false)
	}
}

// updateChildComponent is invoked from a component vnode's prepatch hook: it
// revalidates propsData against the child's declared props and writes each
// through the child's reactive props map, which is what actually propagates
// the change into the child's render-watcher (a prop write notifies its
// Dep; the child's render-watcher, having read that prop during its last
// render, is subscribed and gets queued).
func updateChildComponent(instance *Instance, propsData map[string]any) {
	for name, def := range instance.options.Props {
		value, present := propsData[name]
		resolved := validateProp(name, def, value, present, instance)
		instance.props.Set(name, resolved)
	}
}

// Destroy is `$destroy`: fires beforeDestroy, detaches from the parent's
// children list, tears down every watcher (render and user), patches the
// current vnode against nil (recursively running destroy hooks,
// child-first), and fires destroyed.
func (i *Instance) Destroy() {
	if i.beingDestroyed {
		return
	}
	i.beingDestroyed = true
	callHook(i, hookBeforeDestroy)

	if i.parent != nil {
		i.parent.removeChild(i)
	}
	if i.renderWatcher != nil {
		i.renderWatcher.teardown()
	}
	for _, w := range append([]*Watcher(nil), i.watchers...) {
		w.teardown()
	}

	if i.vnode != nil && i.patch != nil {
		i.patch(i.vnode, nil, false, false)
	}

	i.destroyed = true
	callHook(i, hookDestroyed)
}
