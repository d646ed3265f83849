package reactui

import "reflect"

// validateProp resolves value (or the prop's default, if value is absent)
// against def, warning on a type mismatch or a missing required prop.
func validateProp(name string, def PropDef, value any, present bool, owner *Instance) any {
	if !present {
		if def.Required {
			warnf("missing required prop: %q", name)
		}
		if def.DefaultFn != nil {
			return def.DefaultFn(owner)
		}
		return def.Default
	}
	if def.Type != PropAny && !propTypeMatches(def.Type, value) {
		warnf("invalid prop %q: expected %s, got %T", name, propTypeName(def.Type), value)
	}
	if def.Validator != nil && !def.Validator(value) {
		warnf("invalid prop %q: custom validator rejected value %v", name, value)
	}
	return value
}

func propTypeMatches(t PropType, v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch t {
	case PropString:
		return rv.Kind() == reflect.String
	case PropInt:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return true
		}
		return false
	case PropFloat:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return true
		}
		return false
	case PropBool:
		return rv.Kind() == reflect.Bool
	case PropSlice:
		_, ok := v.(*ObservableSlice)
		return ok || rv.Kind() == reflect.Slice
	case PropMap:
		_, ok := v.(*ObservedMap)
		return ok || rv.Kind() == reflect.Map
	case PropFunc:
		return rv.Kind() == reflect.Func
	default:
		return true
	}
}

func propTypeName(t PropType) string {
	switch t {
	case PropString:
		return "string"
	case PropInt:
		return "int"
	case PropFloat:
		return "float"
	case PropBool:
		return "bool"
	case PropSlice:
		return "slice"
	case PropMap:
		return "map"
	case PropFunc:
		return "func"
	default:
		return "any"
	}
}

// initProps builds the instance's reactive _props map from propsData against
// the merged prop definitions, warning on mismatches. Props are intentionally
// defined reactive (so a render watcher reading them subscribes) but Go has
// no proxy mechanism for `this.name -> _props.name`; callers read props via
// Instance.Prop(name) instead of a synthesized field.
func initProps(instance *Instance, propsData map[string]any) *ObservedMap {
	resolved := make(map[string]any, len(instance.options.Props))
	for name, def := range instance.options.Props {
		value, present := propsData[name]
		resolved[name] = validateProp(name, def, value, present, instance)
	}
	return Reactive(resolved)
}

// MutateProp is what a child component would be calling if it tried to
// write its own prop; spec.md §4.1 requires this to warn rather than
// silently succeed, since prop flow is strictly parent-to-child.
func (i *Instance) MutateProp(name string, value any) {
	warnf("component %q attempted to mutate prop %q directly; props flow down from the parent only", i.Name(), name)
}

// Prop reads a prop value, registering a dependency on it in the current
// tracking context (e.g. while a render watcher is evaluating).
func (i *Instance) Prop(name string) any { return i.props.Get(name) }
