// Package termhost implements reactui.Host over an in-memory box-tree,
// grounded on the teacher's pkg/bubbly render.go lipgloss usage: a shared
// renderer builds lipgloss.Style values, and Render walks the tree turning
// it into a single styled string for a tea.Model's View().
package termhost

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/coraxen/reactui/pkg/reactui"
)

var defaultRenderer = lipgloss.NewRenderer(os.Stdout)

// NewStyle returns a fresh lipgloss.Style bound to the shared renderer, for
// callers (render functions, pkg/modules/attrstyle) building vnode.Data.Style
// entries.
func NewStyle() lipgloss.Style { return defaultRenderer.NewStyle() }

// Node is one element of the box-tree: either a text leaf (Tag == "" and
// Text set) or a container with Children, mirroring how reactui.VNode
// distinguishes a text vnode from an element vnode.
type Node struct {
	Tag   string
	Text  string
	Attrs map[string]any
	Style lipgloss.Style

	Row bool // Attrs["display"] == "row" cached at create/update time

	Children []*Node
	parent   *Node

	styleScope string
	isComment  bool
}

// Host implements reactui.Host over a Node tree. It carries no state of its
// own beyond what each Node holds, so a single Host value can patch many
// independent component trees.
type Host struct{}

var _ reactui.Host = Host{}

func asNode(v any) *Node {
	if v == nil {
		return nil
	}
	n, _ := v.(*Node)
	return n
}

func wrap(n *Node) any {
	if n == nil {
		return nil
	}
	return n
}

func (Host) CreateElement(tag string) any { return &Node{Tag: tag} }

// CreateElementNS ignores ns: a terminal box-tree has no namespaced element
// concept, so this collapses to CreateElement.
func (h Host) CreateElementNS(ns, tag string) any { return h.CreateElement(tag) }

func (Host) CreateTextNode(text string) any { return &Node{Text: text} }

func (Host) CreateComment(text string) any { return &Node{Text: text, isComment: true} }

// detach removes n from its current parent's children, if any. A real DOM
// insertBefore/appendChild implicitly moves a node already in the tree; this
// replicates that so a node never ends up listed under two parents.
func detach(n *Node) {
	if n.parent == nil {
		return
	}
	p := n.parent
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (Host) InsertBefore(parent, node, ref any) {
	p, n := asNode(parent), asNode(node)
	if p == nil || n == nil {
		return
	}
	r := asNode(ref)
	detach(n)
	n.parent = p
	if r == nil {
		p.Children = append(p.Children, n)
		return
	}
	for i, c := range p.Children {
		if c == r {
			p.Children = append(p.Children[:i], append([]*Node{n}, p.Children[i:]...)...)
			return
		}
	}
	p.Children = append(p.Children, n)
}

func (Host) AppendChild(parent, node any) {
	p, n := asNode(parent), asNode(node)
	if p == nil || n == nil {
		return
	}
	detach(n)
	n.parent = p
	p.Children = append(p.Children, n)
}

func (Host) RemoveChild(parent, node any) {
	p, n := asNode(parent), asNode(node)
	if p == nil || n == nil {
		return
	}
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			n.parent = nil
			return
		}
	}
}

func (Host) ParentNode(node any) any {
	n := asNode(node)
	if n == nil {
		return nil
	}
	return wrap(n.parent)
}

func (Host) NextSibling(node any) any {
	n := asNode(node)
	if n == nil || n.parent == nil {
		return nil
	}
	siblings := n.parent.Children
	for i, c := range siblings {
		if c == n && i+1 < len(siblings) {
			return wrap(siblings[i+1])
		}
	}
	return nil
}

func (Host) TagName(node any) string {
	n := asNode(node)
	if n == nil {
		return ""
	}
	return n.Tag
}

func (Host) SetTextContent(node any, text string) {
	n := asNode(node)
	if n == nil {
		return
	}
	n.Text = text
	n.Children = nil
}

func (Host) SetStyleScope(node any, id string) {
	n := asNode(node)
	if n == nil {
		return
	}
	n.styleScope = id
}

// Render turns root into a single styled string, joining a container's
// children vertically unless Row is set (attrstyle sets it from
// vnode.Data.Attrs["display"] == "row").
func Render(root *Node) string {
	if root == nil {
		return ""
	}
	if root.isComment {
		return ""
	}
	if root.Tag == "" {
		return root.Style.Render(root.Text)
	}

	parts := make([]string, 0, len(root.Children))
	for _, c := range root.Children {
		parts = append(parts, Render(c))
	}

	var body string
	if root.Row {
		body = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	return root.Style.Render(body)
}
