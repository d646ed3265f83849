// Package attrstyle provides the attribute and lipgloss-style
// reactui.Module: the two per-vnode concerns a terminal renderer needs that
// the core itself stays agnostic to, following spec.md §6's "a module
// declares any subset of hooks" contract.
package attrstyle

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/coraxen/reactui/pkg/reactui"
	"github.com/coraxen/reactui/pkg/termhost"
)

// Module returns a reactui.Module that copies vnode.Data.Attrs and
// vnode.Data.Style onto the bound termhost.Node on create and update, and
// clears nothing special on destroy (the node is discarded by the patch
// algorithm's removeVnodes regardless).
func Module() reactui.Module {
	return reactui.Module{
		Create:  apply,
		Update:  apply,
		Destroy: func(*reactui.VNode) {},
	}
}

func apply(_, vnode *reactui.VNode) {
	node, ok := vnode.Elm.(*termhost.Node)
	if !ok || vnode.Data == nil {
		return
	}
	node.Attrs = vnode.Data.Attrs
	if display, ok := vnode.Data.Attrs["display"]; ok {
		node.Row = display == "row"
	}
	node.Style = buildStyle(vnode.Data.Style)
}

// buildStyle folds a plain map of style props into a lipgloss.Style. Only
// the handful of properties a terminal UI commonly needs are mapped; an
// unrecognized key is ignored rather than erroring, matching how the core
// treats unknown component option keys (default pass-through).
func buildStyle(props map[string]any) lipgloss.Style {
	style := termhost.NewStyle()
	if props == nil {
		return style
	}
	if v, ok := props["bold"].(bool); ok && v {
		style = style.Bold(true)
	}
	if v, ok := props["italic"].(bool); ok && v {
		style = style.Italic(true)
	}
	if v, ok := props["underline"].(bool); ok && v {
		style = style.Underline(true)
	}
	if v, ok := props["foreground"].(string); ok {
		style = style.Foreground(lipgloss.Color(v))
	}
	if v, ok := props["background"].(string); ok {
		style = style.Background(lipgloss.Color(v))
	}
	if v, ok := props["width"].(int); ok {
		style = style.Width(v)
	}
	if v, ok := props["height"].(int); ok {
		style = style.Height(v)
	}
	if v, ok := props["padding"].([]int); ok {
		style = style.Padding(v...)
	}
	if v, ok := props["margin"].([]int); ok {
		style = style.Margin(v...)
	}
	if v, ok := props["border"].(bool); ok && v {
		style = style.Border(lipgloss.RoundedBorder())
	}
	if v, ok := props["align"].(string); ok {
		switch v {
		case "center":
			style = style.Align(lipgloss.Center)
		case "right":
			style = style.Align(lipgloss.Right)
		default:
			style = style.Align(lipgloss.Left)
		}
	}
	return style
}
