package reactui

// initProvide runs the `provide` option (called with the instance itself as
// context) and stores its result for descendants to resolve against in
// initInjections. Provided values are plain values, not reactive wrappers:
// spec.md's inject contract only promises "resolve once at creation time",
// not live tracking.
func initProvide(instance *Instance) {
	if instance.options.Provide == nil {
		return
	}
	var result map[string]any
	invokeWithErrorHandling(instance, func() error {
		result = instance.options.Provide(instance)
		return nil
	}, "provide()")
	instance.provided = result
}

// initInjections resolves every declared `inject` entry by walking up the
// parent chain looking for the nearest ancestor (including the instance's
// own parent, never itself) whose provided map contains the key named by
// InjectDef.From, falling back to Default when no ancestor provides it.
func initInjections(instance *Instance) {
	if len(instance.options.Inject) == 0 {
		return
	}
	instance.injected = make(map[string]any, len(instance.options.Inject))
	for name, def := range instance.options.Inject {
		from := def.From
		if from == "" {
			from = name
		}
		value, ok := resolveProvided(instance.parent, from)
		if !ok {
			if def.Default == nil {
				warnf("injection %q has no matching provide and no default", name)
			}
			value = def.Default
		}
		instance.injected[name] = value
	}
}

func resolveProvided(ancestor *Instance, key string) (any, bool) {
	for a := ancestor; a != nil; a = a.parent {
		if a.provided != nil {
			if v, ok := a.provided[key]; ok {
				return v, true
			}
		}
	}
	return nil, false
}

// Inject reads a resolved injection by name.
func (i *Instance) Inject(name string) any { return i.injected[name] }
