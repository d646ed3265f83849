package reactui

import "time"

// patcher binds a Host and precomputed module hooks together; its patch
// method, once closed over as a PatchFunc, is what every Instance in the
// tree shares (see NewPatchFunction).
type patcher struct {
	host  Host
	hooks *moduleHooks
}

var emptyVNode = &VNode{Tag: "", IsComment: true, Text: ""}

// patch reconciles oldVnode against newVnode: a nil newVnode runs the old
// tree's destroy hooks; a nil oldVnode builds the new tree; a same-vnode
// pair is patched in place; anything else builds the new tree next to the
// old one and removes the old one, running its destroy hooks. oldVnode is
// always a *VNode, so a live host node cannot be passed in its place. It is
// the method bound into the PatchFunc every Instance carries.
func (p *patcher) patch(oldVnode, newVnode *VNode, hydrating, removeOnly bool) any {
	start := time.Now()
	defer func() {
		globalScheduler.metrics.ObservePatch(time.Since(start), countVNodes(newVnode))
	}()

	if newVnode == nil {
		if oldVnode != nil {
			p.invokeDestroyHook(oldVnode)
		}
		return nil
	}

	var insertedQueue []*VNode

	if oldVnode == nil {
		elm := p.createElm(newVnode, &insertedQueue, nil, nil)
		p.invokeInsertHooks(insertedQueue)
		return elm
	}

	if sameVNode(oldVnode, newVnode) {
		p.patchVnode(oldVnode, newVnode, &insertedQueue, removeOnly)
		p.invokeInsertHooks(insertedQueue)
		return newVnode.Elm
	}

	oldElm := oldVnode.Elm
	parentElm := p.host.ParentNode(oldElm)
	refElm := p.host.NextSibling(oldElm)
	elm := p.createElm(newVnode, &insertedQueue, parentElm, refElm)
	p.removeVnodes([]*VNode{oldVnode}, 0, 0)
	p.invokeInsertHooks(insertedQueue)
	return elm
}

func (p *patcher) insert(parent, elm, ref any) {
	if parent == nil {
		return
	}
	if ref != nil {
		p.host.InsertBefore(parent, elm, ref)
		return
	}
	p.host.AppendChild(parent, elm)
}

// createElm builds the host node for vnode (and, recursively, its children),
// bottom-up: children are created and appended into vnode's not-yet-inserted
// element first, then the element itself is inserted into parentElm.
func (p *patcher) createElm(vnode *VNode, insertedQueue *[]*VNode, parentElm, refElm any) any {
	if isComponentVNode(vnode) {
		elm := p.createComponentElm(vnode, parentElm, refElm)
		return elm
	}

	switch {
	case vnode.IsComment:
		vnode.Elm = p.host.CreateComment(vnode.Text)
	case vnode.Tag == "":
		vnode.Elm = p.host.CreateTextNode(vnode.Text)
	default:
		vnode.Elm = p.host.CreateElement(vnode.Tag)
		for _, c := range vnode.Children {
			p.createElm(c, insertedQueue, vnode.Elm, nil)
		}
		p.invokeCreateHooks(vnode, insertedQueue)
	}

	p.insert(parentElm, vnode.Elm, refElm)
	return vnode.Elm
}

// createComponentElm instantiates and mounts the child instance a component
// vnode describes, using the active-instance pointer (set by the enclosing
// _update call still on the stack) as the new child's parent.
func (p *patcher) createComponentElm(vnode *VNode, parentElm, refElm any) any {
	owner := currentActiveInstance()
	child := newInstance(vnode.ComponentOptions.Options, owner, vnode, vnode.ComponentOptions.PropsData, p.host, PatchFunc(p.patch))
	vnode.ComponentInstance = child

	mountComponent(child, nil)
	vnode.Elm = child.elNode

	if vnode.Data != nil && vnode.Data.Hook != nil && vnode.Data.Hook.Init != nil {
		vnode.Data.Hook.Init(vnode)
	}
	p.insert(parentElm, vnode.Elm, refElm)
	return vnode.Elm
}

func (p *patcher) invokeCreateHooks(vnode *VNode, insertedQueue *[]*VNode) {
	for _, fn := range p.hooks.create {
		fn(emptyVNode, vnode)
	}
	if vnode.Data != nil && vnode.Data.Hook != nil {
		if vnode.Data.Hook.Init != nil {
			vnode.Data.Hook.Init(vnode)
		}
		if vnode.Data.Hook.Insert != nil {
			*insertedQueue = append(*insertedQueue, vnode)
		}
	}
}

func (p *patcher) invokeInsertHooks(queue []*VNode) {
	for _, vnode := range queue {
		if vnode.Data != nil && vnode.Data.Hook != nil && vnode.Data.Hook.Insert != nil {
			vnode.Data.Hook.Insert(vnode)
		}
	}
}

// patchVnode implements spec.md §4.8's patchVnode(old, new).
func (p *patcher) patchVnode(oldVnode, newVnode *VNode, insertedQueue *[]*VNode, removeOnly bool) {
	if oldVnode == newVnode {
		return
	}
	elm := oldVnode.Elm
	newVnode.Elm = elm

	if isComponentVNode(newVnode) {
		newVnode.ComponentInstance = oldVnode.ComponentInstance
		if newVnode.Data != nil && newVnode.Data.Hook != nil && newVnode.Data.Hook.Prepatch != nil {
			newVnode.Data.Hook.Prepatch(oldVnode, newVnode)
		} else if newVnode.ComponentOptions != nil && newVnode.ComponentInstance != nil {
			updateChildComponent(newVnode.ComponentInstance, newVnode.ComponentOptions.PropsData)
		}
	}

	for _, fn := range p.hooks.update {
		fn(oldVnode, newVnode)
	}
	if newVnode.Data != nil && newVnode.Data.Hook != nil && newVnode.Data.Hook.Update != nil {
		newVnode.Data.Hook.Update(oldVnode, newVnode)
	}

	oldCh := oldVnode.Children
	newCh := newVnode.Children
	switch {
	case len(newCh) > 0 && len(oldCh) > 0:
		if !sameChildren(oldCh, newCh) {
			p.updateChildren(elm, oldCh, newCh, insertedQueue, removeOnly)
		}
	case len(newCh) > 0:
		if oldVnode.Tag == "" && oldVnode.Text != "" {
			p.host.SetTextContent(elm, "")
		}
		p.addVnodes(elm, nil, newCh, 0, len(newCh)-1, insertedQueue)
	case len(oldCh) > 0:
		p.removeVnodes(oldCh, 0, len(oldCh)-1)
	case oldVnode.Tag == "" && newVnode.Tag == "" && oldVnode.Text != newVnode.Text:
		p.host.SetTextContent(elm, newVnode.Text)
	}

	if newVnode.Data != nil && newVnode.Data.Hook != nil && newVnode.Data.Hook.Postpatch != nil {
		newVnode.Data.Hook.Postpatch(oldVnode, newVnode)
	}
}

// sameChildren is a cheap identity check used only to skip updateChildren
// when both sides point at the exact same slice (a component re-rendering
// without having changed a given children group, e.g. forwarded as-is).
func sameChildren(a, b []*VNode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// updateChildren is the two-pointer reconciliation from spec.md §4.8.
func (p *patcher) updateChildren(parentElm any, oldCh, newCh []*VNode, insertedQueue *[]*VNode, removeOnly bool) {
	oldStart, oldEnd := 0, len(oldCh)-1
	newStart, newEnd := 0, len(newCh)-1
	var oldKeyToIdx map[any]int

	for oldStart <= oldEnd && newStart <= newEnd {
		switch {
		case oldCh[oldStart] == nil:
			oldStart++
		case oldCh[oldEnd] == nil:
			oldEnd--
		case sameVNode(oldCh[oldStart], newCh[newStart]):
			p.patchVnode(oldCh[oldStart], newCh[newStart], insertedQueue, removeOnly)
			oldStart++
			newStart++
		case sameVNode(oldCh[oldEnd], newCh[newEnd]):
			p.patchVnode(oldCh[oldEnd], newCh[newEnd], insertedQueue, removeOnly)
			oldEnd--
			newEnd--
		case sameVNode(oldCh[oldStart], newCh[newEnd]):
			p.patchVnode(oldCh[oldStart], newCh[newEnd], insertedQueue, removeOnly)
			if !removeOnly {
				p.insert(parentElm, oldCh[oldStart].Elm, p.host.NextSibling(oldCh[oldEnd].Elm))
			}
			oldStart++
			newEnd--
		case sameVNode(oldCh[oldEnd], newCh[newStart]):
			p.patchVnode(oldCh[oldEnd], newCh[newStart], insertedQueue, removeOnly)
			if !removeOnly {
				p.insert(parentElm, oldCh[oldEnd].Elm, oldCh[oldStart].Elm)
			}
			oldEnd--
			newStart++
		default:
			if oldKeyToIdx == nil {
				oldKeyToIdx = buildKeyToIdx(oldCh, oldStart, oldEnd)
			}
			var idxInOld int
			var found bool
			if newCh[newStart].Key != nil {
				idxInOld, found = oldKeyToIdx[newCh[newStart].Key]
			}
			if !found {
				p.createElm(newCh[newStart], insertedQueue, parentElm, oldCh[oldStart].Elm)
			} else {
				toMove := oldCh[idxInOld]
				if sameVNode(toMove, newCh[newStart]) {
					p.patchVnode(toMove, newCh[newStart], insertedQueue, removeOnly)
					oldCh[idxInOld] = nil
					if !removeOnly {
						p.insert(parentElm, toMove.Elm, oldCh[oldStart].Elm)
					}
				} else {
					p.createElm(newCh[newStart], insertedQueue, parentElm, oldCh[oldStart].Elm)
				}
			}
			newStart++
		}
	}

	if oldStart > oldEnd {
		var refElm any
		if newEnd+1 < len(newCh) {
			refElm = newCh[newEnd+1].Elm
		}
		p.addVnodes(parentElm, refElm, newCh, newStart, newEnd, insertedQueue)
	} else if newStart > newEnd {
		p.removeVnodes(oldCh, oldStart, oldEnd)
	}
}

func countVNodes(v *VNode) int {
	if v == nil {
		return 0
	}
	n := 1
	for _, c := range v.Children {
		n += countVNodes(c)
	}
	return n
}

func buildKeyToIdx(ch []*VNode, start, end int) map[any]int {
	m := make(map[any]int, end-start+1)
	for i := start; i <= end; i++ {
		if ch[i] == nil || ch[i].Key == nil {
			continue
		}
		if _, dup := m[ch[i].Key]; dup {
			warnf("duplicate key %v among siblings", ch[i].Key)
		}
		m[ch[i].Key] = i
	}
	return m
}

func (p *patcher) addVnodes(parentElm, refElm any, vnodes []*VNode, start, end int, insertedQueue *[]*VNode) {
	for i := start; i <= end; i++ {
		p.createElm(vnodes[i], insertedQueue, parentElm, refElm)
	}
}

func (p *patcher) removeVnodes(vnodes []*VNode, start, end int) {
	for i := start; i <= end; i++ {
		v := vnodes[i]
		if v == nil {
			continue
		}
		p.removeNode(v)
		p.invokeDestroyHook(v)
	}
}

func (p *patcher) removeNode(vnode *VNode) {
	parent := p.host.ParentNode(vnode.Elm)
	if parent == nil {
		return
	}
	p.host.RemoveChild(parent, vnode.Elm)
}

// invokeDestroyHook runs destroy hooks recursively, child-first, matching
// spec.md's "$destroy patches the current vnode against nil (triggers
// destroy hooks recursively, child-first)".
func (p *patcher) invokeDestroyHook(vnode *VNode) {
	for _, c := range vnode.Children {
		p.invokeDestroyHook(c)
	}
	if vnode.ComponentInstance != nil {
		vnode.ComponentInstance.Destroy()
	}
	for _, fn := range p.hooks.destroy {
		fn(vnode)
	}
	if vnode.Data != nil && vnode.Data.Hook != nil && vnode.Data.Hook.Destroy != nil {
		vnode.Data.Hook.Destroy(vnode)
	}
}
