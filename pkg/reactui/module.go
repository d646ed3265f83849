package reactui

// Module is the injected per-concern hook set from spec.md §6: attributes,
// classes, styles, events, and so on each get their own Module rather than
// the patch algorithm special-casing any of them.
type Module struct {
	Create   func(emptyVnode, vnode *VNode)
	Activate func(emptyVnode, vnode *VNode)
	Update   func(oldVnode, vnode *VNode)
	Remove   func(vnode *VNode, removeCallback func())
	Destroy  func(vnode *VNode)
}

// moduleHooks are the per-stage aggregate arrays spec.md's "module hook
// fan-out" design note asks for, precomputed once at patch-factory time so
// patching never re-walks the module list or uses reflection.
type moduleHooks struct {
	create   []func(emptyVnode, vnode *VNode)
	activate []func(emptyVnode, vnode *VNode)
	update   []func(oldVnode, vnode *VNode)
	remove   []func(vnode *VNode, removeCallback func())
	destroy  []func(vnode *VNode)
}

func buildModuleHooks(modules []Module) *moduleHooks {
	h := &moduleHooks{}
	for _, m := range modules {
		if m.Create != nil {
			h.create = append(h.create, m.Create)
		}
		if m.Activate != nil {
			h.activate = append(h.activate, m.Activate)
		}
		if m.Update != nil {
			h.update = append(h.update, m.Update)
		}
		if m.Remove != nil {
			h.remove = append(h.remove, m.Remove)
		}
		if m.Destroy != nil {
			h.destroy = append(h.destroy, m.Destroy)
		}
	}
	return h
}

// PatchFunc reconciles oldVnode against newVnode against the Host this
// PatchFunc was constructed against, per spec.md §4.8, and returns the
// top-level host node now bound to newVnode.
type PatchFunc func(oldVnode, newVnode *VNode, hydrating, removeOnly bool) any

// NewPatchFunction binds a Host and a set of Modules into a PatchFunc,
// precomputing the modules' per-stage hook arrays once (spec.md's "Module
// hook fan-out" design note: "precompute per-stage arrays at patch-factory
// time; avoid reflection at runtime").
func NewPatchFunction(host Host, modules []Module) PatchFunc {
	p := &patcher{host: host, hooks: buildModuleHooks(modules)}
	return p.patch
}
