package reactui

// Host is the injected DOM facade from spec.md §6: the patch algorithm
// never touches a concrete UI toolkit directly, only this interface, so the
// same reconciliation logic can drive a terminal renderer, a headless test
// double, or (in principle) an actual browser DOM binding.
type Host interface {
	CreateElement(tag string) any
	CreateElementNS(ns, tag string) any
	CreateTextNode(text string) any
	CreateComment(text string) any

	InsertBefore(parent, node, ref any)
	AppendChild(parent, node any)
	RemoveChild(parent, node any)

	ParentNode(node any) any
	NextSibling(node any) any
	TagName(node any) string

	SetTextContent(node any, text string)
	SetStyleScope(node any, id string)
}
