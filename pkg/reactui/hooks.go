package reactui

type hookName int

const (
	hookBeforeCreate hookName = iota
	hookCreated
	hookBeforeMount
	hookMounted
	hookBeforeUpdate
	hookUpdated
	hookBeforeDestroy
	hookDestroyed
	hookActivated
	hookDeactivated
)

func hooksFor(o *Options, name hookName) []LifecycleHook {
	switch name {
	case hookBeforeCreate:
		return o.BeforeCreate
	case hookCreated:
		return o.Created
	case hookBeforeMount:
		return o.BeforeMount
	case hookMounted:
		return o.Mounted
	case hookBeforeUpdate:
		return o.BeforeUpdate
	case hookUpdated:
		return o.Updated
	case hookBeforeDestroy:
		return o.BeforeDestroy
	case hookDestroyed:
		return o.Destroyed
	case hookActivated:
		return o.Activated
	case hookDeactivated:
		return o.Deactivated
	default:
		return nil
	}
}

// callHook runs every hook of the given name registered on instance's
// merged options, in order, under invokeWithErrorHandling. Hooks push a nil
// target onto the dependency-tracking stack first so user code in a hook
// cannot accidentally subscribe a watcher (there is none active during a
// hook call in the first place, but a hook may itself call into a getter
// that would otherwise start tracking against whatever watcher happens to
// be mid-evaluation higher up the call stack).
func callHook(instance *Instance, name hookName) {
	if instance == nil {
		return
	}
	pushTarget(nil)
	defer popTarget()
	for _, hook := range hooksFor(instance.options, name) {
		h := hook
		invokeWithErrorHandling(instance, func() error {
			h(instance)
			return nil
		}, "lifecycle hook")
	}
}
