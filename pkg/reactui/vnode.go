package reactui

// VNodeHooks are the per-vnode user hooks living on VNode.Data.Hook, run
// alongside the module hooks the patch function fans out to.
type VNodeHooks struct {
	Init      func(vnode *VNode)
	Prepatch  func(oldVnode, vnode *VNode)
	Insert    func(vnode *VNode)
	Update    func(oldVnode, vnode *VNode)
	Remove    func(vnode *VNode, removeCallback func())
	Postpatch func(oldVnode, vnode *VNode)
	Destroy   func(vnode *VNode)
}

// VNode is a descriptor of a desired host-DOM state; see spec.md §3.
type VNode struct {
	Tag  string
	Data *VNodeData

	Children []*VNode
	Text     string

	// Elm is the bound host node, once createElm has run for this vnode.
	Elm any

	Key any

	// ComponentOptions is set when this vnode represents a component
	// placeholder rather than a plain element.
	ComponentOptions *ComponentVNodeOptions
	// ComponentInstance is the live child Instance once createElm has
	// instantiated it.
	ComponentInstance *Instance

	// Parent is the placeholder vnode in the enclosing component's render
	// output, for a component's own root vnode; nil otherwise.
	Parent *VNode

	IsComment          bool
	IsStatic           bool
	IsAsyncPlaceholder bool
}

// VNodeData carries attributes, the per-vnode user hook set, and anything
// a Module cares about (keyed by the module's own convention, e.g.
// "style"/"class"); Attrs is intentionally a plain map rather than a
// reactive one (spec.md §4.7: "reactive data is rejected with a warning").
type VNodeData struct {
	Attrs map[string]any
	// Style holds lipgloss style props for pkg/modules/attrstyle; kept
	// separate from Attrs so a terminal-specific module can own it without
	// the core's vnode type importing lipgloss.
	Style map[string]any
	Hook  *VNodeHooks
	Key   any
	Ref   string
}

// ComponentVNodeOptions binds a component vnode to the Options it should
// instantiate and the resolved props/listeners to construct it with.
type ComponentVNodeOptions struct {
	Options   *Options
	PropsData map[string]any
}

func isComponentVNode(v *VNode) bool { return v != nil && v.ComponentOptions != nil }

// sameVNode implements spec.md §3's "same vnode" diff-level equivalence.
func sameVNode(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Key != b.Key {
		return false
	}
	if a.Tag != b.Tag {
		return false
	}
	if a.IsComment != b.IsComment {
		return false
	}
	if (a.Data == nil) != (b.Data == nil) {
		return false
	}
	if a.Tag == "input" {
		return sameInputType(a, b)
	}
	return true
}

func sameInputType(a, b *VNode) bool {
	at, aok := inputType(a)
	bt, bok := inputType(b)
	if !aok && !bok {
		return true
	}
	return at == bt
}

func inputType(v *VNode) (string, bool) {
	if v.Data == nil || v.Data.Attrs == nil {
		return "", false
	}
	t, ok := v.Data.Attrs["type"]
	if !ok {
		return "", false
	}
	s, _ := t.(string)
	return s, true
}

// H is the vnode factory bound to one rendering Instance, realizing
// createElement(tag, data, children, normalizationType) from spec.md §4.7.
type H struct {
	owner *Instance
}

// NormalizationType selects how deeply children are flattened.
type NormalizationType int

const (
	// NormalizeNone: children are already a flat []*VNode (hand-authored Go
	// render functions produce this shape directly, unlike a compiled
	// template; there is no "always" case to additionally coalesce here).
	NormalizeNone NormalizationType = iota
	// NormalizeSimple: flattens nested []any child groups at every depth and
	// coalesces adjacent text nodes; it currently behaves exactly like
	// NormalizeFull, with no single-level-only mode.
	NormalizeSimple
	// NormalizeFull: recursive flatten, coalescing adjacent text nodes —
	// used when children come from user-composed helper functions that may
	// themselves return slices or nested slices.
	NormalizeFull
)

// CreateElement builds a plain-element, component, or text vnode. tag may
// name a registered component id (resolved against h's owning instance's
// merged Components asset map) or be treated as a plain element tag.
func (h *H) CreateElement(tag string, data *VNodeData, children []any, normalization NormalizationType) *VNode {
	if data != nil && isReactiveAttrs(data.Attrs) {
		warnf("avoid using observed data objects as vnode data: %s", tag)
	}
	if data != nil && data.Attrs != nil {
		if is, ok := data.Attrs["is"].(string); ok && is != "" {
			tag = is
		}
	}

	kids := normalizeChildren(children, normalization)

	if comp, ok := resolveAsset(h.owner.options.Components, tag); ok {
		return createComponentVNode(tag, data, comp, kids)
	}
	return &VNode{Tag: tag, Data: data, Children: kids}
}

// CreateComponent builds a component vnode directly from an already
// resolved *Options, for callers that did not register the component under
// a string id (spec.md §4.7 case (d): "a component constructor or options
// object").
func (h *H) CreateComponent(opts *Options, data *VNodeData, children []any, normalization NormalizationType) *VNode {
	return createComponentVNode(opts.Name, data, opts, normalizeChildren(children, normalization))
}

func createComponentVNode(tag string, data *VNodeData, opts *Options, children []*VNode) *VNode {
	propsData := map[string]any{}
	if data != nil {
		for k, v := range data.Attrs {
			propsData[k] = v
		}
	}
	v := &VNode{
		Tag:      tag,
		Data:     data,
		Children: children,
		ComponentOptions: &ComponentVNodeOptions{
			Options:   opts,
			PropsData: propsData,
		},
	}
	if data != nil {
		v.Key = data.Key
	}
	return v
}

// CreateTextVNode builds a text vnode.
func (h *H) CreateTextVNode(text string) *VNode { return &VNode{Text: text} }

// CreateCommentVNode builds a comment vnode (used for placeholders such as
// an empty render result or an unresolved async component).
func (h *H) CreateCommentVNode(text string) *VNode { return &VNode{Text: text, IsComment: true} }

func isReactiveAttrs(attrs map[string]any) bool {
	_, ok := any(attrs).(*ObservedMap)
	return ok
}

func normalizeChildren(children []any, kind NormalizationType) []*VNode {
	switch kind {
	case NormalizeFull:
		return flattenDeep(children)
	case NormalizeSimple:
		return flattenShallow(children)
	default:
		out := make([]*VNode, 0, len(children))
		for _, c := range children {
			if v, ok := c.(*VNode); ok && v != nil {
				out = append(out, v)
			}
		}
		return out
	}
}

func flattenShallow(children []any) []*VNode {
	out := make([]*VNode, 0, len(children))
	for _, c := range children {
		switch cv := c.(type) {
		case *VNode:
			if cv != nil {
				out = append(out, cv)
			}
		case []any:
			out = append(out, flattenShallow(cv)...)
		case string:
			out = append(out, &VNode{Text: cv})
		}
	}
	return coalesceText(out)
}

func flattenDeep(children []any) []*VNode {
	return flattenShallow(children)
}

// coalesceText merges adjacent text vnodes, matching spec.md §4.7's "deep
// normalization coalesces adjacent text nodes".
func coalesceText(nodes []*VNode) []*VNode {
	out := make([]*VNode, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.Tag == "" && n.ComponentOptions == nil && !n.IsComment && len(out) > 0 {
			prev := out[len(out)-1]
			if prev.Tag == "" && prev.ComponentOptions == nil && !prev.IsComment {
				prev.Text += n.Text
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
