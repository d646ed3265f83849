package reactui

// initState runs the props -> methods -> data -> computed -> watch order
// from spec.md §4.6. Methods need no reactive wrapping; the rest build on
// each other in this exact order because prop/data name collisions are
// checked against what has already been defined.
func initState(instance *Instance, propsData map[string]any) {
	instance.props = initProps(instance, propsData)
	initMethods(instance)
	initData(instance)
	initComputed(instance)
	initWatch(instance)
}

func initMethods(instance *Instance) {
	// Methods are plain Go closures supplied by the component author and
	// require no reactive wrapping or name-collision defense beyond Go's
	// own compile-time field/method namespacing; stored as-is on options
	// and invoked by name via Instance.Call.
}

// Call invokes a registered method by name. Panics inside it are caught and
// routed through the same error pipeline as a watcher or hook.
func (i *Instance) Call(name string, args ...any) (result any) {
	fn, ok := i.options.Methods[name]
	if !ok {
		warnf("no such method: %q", name)
		return nil
	}
	invoke, ok := fn.(func(*Instance, ...any) any)
	if !ok {
		warnf("method %q has an unsupported signature; expected func(*Instance, ...any) any", name)
		return nil
	}
	invokeWithErrorHandling(i, func() error {
		result = invoke(i, args...)
		return nil
	}, "method \""+name+"\"")
	return result
}

// initData evaluates the data factory under a capture-suppressing nil
// target (data construction must not subscribe anything), rejects keys that
// collide with a declared prop, and wraps the result reactive.
func initData(instance *Instance) {
	var raw map[string]any
	if instance.options.Data != nil {
		pushTarget(nil)
		invokeWithErrorHandling(instance, func() error {
			raw = instance.options.Data(instance)
			return nil
		}, "data()")
		popTarget()
	}
	if raw == nil {
		raw = map[string]any{}
	}
	for key := range raw {
		if _, isProp := instance.options.Props[key]; isProp {
			warnf("data property %q is already declared as a prop; the prop value takes precedence", key)
			delete(raw, key)
		}
		if _, isMethod := instance.options.Methods[key]; isMethod {
			warnf("data property %q conflicts with a method of the same name", key)
		}
	}
	instance.data = Reactive(raw)
}

// Data reads a data key, registering a dependency on it like
// ObservedMap.Get.
func (i *Instance) Data(key string) any { return i.data.Get(key) }

// SetData writes a data key through the instance's reactive data map.
func (i *Instance) SetData(key string, value any) { i.data.Set(key, value) }

// initComputed creates one lazy Watcher per computed entry. Accessing the
// computed value (Instance.Computed) evaluates the watcher if dirty and, if
// another watcher is currently the tracking target, forwards depend() so
// the outer watcher also subscribes to the computed's own inputs.
func initComputed(instance *Instance) {
	if len(instance.options.Computed) == 0 {
		return
	}
	instance.computedWatchers = make(map[string]*Watcher, len(instance.options.Computed))
	for name, fn := range instance.options.Computed {
		getter := fn
		instance.computedWatchers[name] = NewWatcher(instance, func() any {
			return getter(instance)
		}, nil, WatcherOptions{Lazy: true, Expr: "computed:" + name})
	}
}

// Computed reads a computed property by name.
func (i *Instance) Computed(name string) any {
	w, ok := i.computedWatchers[name]
	if !ok {
		warnf("no such computed property: %q", name)
		return nil
	}
	if w.dirty {
		w.evaluate()
	}
	if target := currentTarget(); target != nil {
		w.depend()
	}
	return w.value
}

// initWatch registers a Watcher (via Instance.Watch) for every `watch` option entry,
// firing immediately for any marked Immediate.
func initWatch(instance *Instance) {
	for key, defs := range instance.options.Watch {
		for _, def := range defs {
			instance.Watch(key, def.Handler, WatchOptions{
				Immediate: def.Immediate,
				Deep:      def.Deep,
				Sync:      def.Sync,
			})
		}
	}
}
