// Command demo is a small counter-and-name-field application exercising the
// full stack: component options, reactive data, a render function producing
// a vnode tree, the patch algorithm against pkg/termhost, and pkg/runtime's
// bubbletea-driven scheduler tick. The name field wraps a bubbles/textinput
// model the way the teacher's components.Input wraps one against a reactive
// ref: the model lives in instance data, and every keystroke writes the
// updated model back through SetData so the field is just another reactive
// value the render function reads.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/coraxen/reactui/pkg/reactui"
	"github.com/coraxen/reactui/pkg/runtime"
)

func newNameInput() *textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.Focus()
	return &ti
}

func counterOptions() *reactui.Options {
	return reactui.Normalize(&reactui.RawOptions{
		Name: "counter",
		Data: func(*reactui.Instance) map[string]any {
			return map[string]any{"count": 0, "nameInput": newNameInput()}
		},
		Methods: map[string]any{
			"increment": func(ctx *reactui.Instance, _ ...any) any {
				ctx.SetData("count", ctx.Data("count").(int)+1)
				return nil
			},
			"decrement": func(ctx *reactui.Instance, _ ...any) any {
				ctx.SetData("count", ctx.Data("count").(int)-1)
				return nil
			},
		},
		Render: func(ctx *reactui.Instance, h *reactui.H) *reactui.VNode {
			count := ctx.Data("count").(int)
			nameInput := ctx.Data("nameInput").(*textinput.Model)
			label := fmt.Sprintf(
				"count: %d\n(+/- to change, ctrl+c to quit)\n\nname: %s",
				count, nameInput.View(),
			)
			return h.CreateElement("box", &reactui.VNodeData{
				Style: map[string]any{
					"border":  true,
					"bold":    count%2 == 0,
					"padding": []int{1, 2},
				},
			}, []any{h.CreateTextVNode(label)}, reactui.NormalizeNone)
		},
	})
}

func handleKeys(instance *reactui.Instance, msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch km.String() {
	case "+", "up":
		instance.Call("increment")
		return nil
	case "-", "down":
		instance.Call("decrement")
		return nil
	}

	nameInput := instance.Data("nameInput").(*textinput.Model)
	updated, cmd := nameInput.Update(msg)
	instance.SetData("nameInput", &updated)
	return cmd
}

func main() {
	err := runtime.Run(
		counterOptions(),
		[]runtime.Option{runtime.WithMessageHandler(handleKeys)},
		tea.WithAltScreen(),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo:", err)
		os.Exit(1)
	}
}
