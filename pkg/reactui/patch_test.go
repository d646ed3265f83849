package reactui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNode and fakeHost are a minimal in-memory Host double for exercising
// the patch algorithm without pulling in pkg/termhost (which would make
// this package depend on its own downstream consumer).
type fakeNode struct {
	tag      string
	text     string
	children []*fakeNode
	parent   *fakeNode
}

type fakeHost struct{ moves int }

func asFakeNode(v any) *fakeNode {
	if v == nil {
		return nil
	}
	n, _ := v.(*fakeNode)
	return n
}

func (h *fakeHost) CreateElement(tag string) any     { return &fakeNode{tag: tag} }
func (h *fakeHost) CreateElementNS(_, tag string) any { return h.CreateElement(tag) }
func (h *fakeHost) CreateTextNode(text string) any   { return &fakeNode{text: text} }
func (h *fakeHost) CreateComment(text string) any    { return &fakeNode{text: text} }

// detach removes n from whatever parent it currently sits under, mirroring
// the real DOM's implicit move-on-insert semantics: a node can only ever
// occupy one position in the tree.
func detachFakeNode(n *fakeNode) {
	if n.parent == nil {
		return
	}
	p := n.parent
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (h *fakeHost) InsertBefore(parent, node, ref any) {
	p, n, r := asFakeNode(parent), asFakeNode(node), asFakeNode(ref)
	if p == nil || n == nil {
		return
	}
	if n.parent != nil {
		detachFakeNode(n)
		h.moves++
	}
	n.parent = p
	if r == nil {
		p.children = append(p.children, n)
		return
	}
	for i, c := range p.children {
		if c == r {
			p.children = append(p.children[:i], append([]*fakeNode{n}, p.children[i:]...)...)
			return
		}
	}
	p.children = append(p.children, n)
}

func (h *fakeHost) AppendChild(parent, node any) {
	p, n := asFakeNode(parent), asFakeNode(node)
	if p == nil || n == nil {
		return
	}
	if n.parent != nil {
		detachFakeNode(n)
	}
	n.parent = p
	p.children = append(p.children, n)
}

func (h *fakeHost) RemoveChild(parent, node any) {
	p, n := asFakeNode(parent), asFakeNode(node)
	if p == nil || n == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			n.parent = nil
			return
		}
	}
}

func (h *fakeHost) ParentNode(node any) any {
	n := asFakeNode(node)
	if n == nil || n.parent == nil {
		return nil
	}
	return n.parent
}

func (h *fakeHost) NextSibling(node any) any {
	n := asFakeNode(node)
	if n == nil || n.parent == nil {
		return nil
	}
	sibs := n.parent.children
	for i, c := range sibs {
		if c == n && i+1 < len(sibs) {
			return sibs[i+1]
		}
	}
	return nil
}

func (h *fakeHost) TagName(node any) string {
	n := asFakeNode(node)
	if n == nil {
		return ""
	}
	return n.tag
}

func (h *fakeHost) SetTextContent(node any, text string) {
	if n := asFakeNode(node); n != nil {
		n.text = text
	}
}

func (h *fakeHost) SetStyleScope(any, string) {}

func keyedChild(key string) *VNode {
	return &VNode{Tag: "li", Key: key, Children: []*VNode{{Text: key}}}
}

// TestPatch_KeyedListDiff covers spec.md §8 scenario 3.
func TestPatch_KeyedListDiff(t *testing.T) {
	host := &fakeHost{}
	patchFn := NewPatchFunction(host, nil)

	oldChildren := []*VNode{keyedChild("A"), keyedChild("B"), keyedChild("C"), keyedChild("D")}
	oldRoot := &VNode{Tag: "ul", Children: oldChildren}
	patchFn(nil, oldRoot, false, false)

	oldElms := map[string]any{}
	for _, c := range oldChildren {
		oldElms[c.Key.(string)] = c.Elm
	}

	newChildren := []*VNode{keyedChild("D"), keyedChild("A"), keyedChild("B"), keyedChild("C")}
	newRoot := &VNode{Tag: "ul", Children: newChildren}
	patchFn(oldRoot, newRoot, false, false)

	root := asFakeNode(newRoot.Elm)
	require.Len(t, root.children, 4)
	gotOrder := make([]string, len(root.children))
	for i, c := range root.children {
		require.Len(t, c.children, 1)
		gotOrder[i] = c.children[0].text
	}
	assert.Equal(t, []string{"D", "A", "B", "C"}, gotOrder)

	for _, c := range newChildren {
		assert.Same(t, oldElms[c.Key.(string)], c.Elm, "element identity must be preserved for key %q", c.Key)
	}

	assert.Equal(t, 1, host.moves, "exactly one move operation should have been invoked")
}

// TestPatch_Idempotent covers spec.md §8's idempotence law:
// patch(v, v) is a no-op on the DOM.
func TestPatch_Idempotent(t *testing.T) {
	host := &fakeHost{}
	patchFn := NewPatchFunction(host, nil)

	root := &VNode{Tag: "div", Children: []*VNode{{Text: "hello"}}}
	patchFn(nil, root, false, false)
	before := asFakeNode(root.Elm).children[0].text

	patchFn(root, root, false, false)
	after := asFakeNode(root.Elm).children[0].text

	assert.Equal(t, before, after)
	assert.Equal(t, 0, host.moves)
}
