package reactui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLifecycle_ParentBeforeChildUpdateOrder covers spec.md §8 scenario 2:
// parent data {n:1}, child receives n as a prop; after n becomes 2 the
// observable hook order must be parent.beforeUpdate, child.beforeUpdate,
// child.updated, parent.updated.
func TestLifecycle_ParentBeforeChildUpdateOrder(t *testing.T) {
	var order []string
	record := func(label string) LifecycleHook {
		return func(*Instance) { order = append(order, label) }
	}

	child := Normalize(&RawOptions{
		Name:         "child",
		Props:        []string{"n"},
		BeforeUpdate: []LifecycleHook{record("child.beforeUpdate")},
		Updated:      []LifecycleHook{record("child.updated")},
		Render: func(ctx *Instance, h *H) *VNode {
			n := ctx.Prop("n")
			return h.CreateTextVNode(fmt.Sprintf("child n: %v", n))
		},
	})

	parent := Normalize(&RawOptions{
		Name: "parent",
		Data: func(*Instance) map[string]any {
			return map[string]any{"n": 1}
		},
		Components:   map[string]*Options{"child": child},
		BeforeUpdate: []LifecycleHook{record("parent.beforeUpdate")},
		Updated:      []LifecycleHook{record("parent.updated")},
		Render: func(ctx *Instance, h *H) *VNode {
			n := ctx.Data("n")
			return h.CreateElement("div", nil, []any{
				h.CreateElement("child", &VNodeData{Attrs: map[string]any{"n": n}}, nil, NormalizeNone),
			}, NormalizeNone)
		},
	})

	host := &fakeHost{}
	root := NewRootInstance(parent, host, nil)
	root.Mount(&fakeNode{tag: "root"})
	require.True(t, root.Mounted())
	require.Len(t, root.Children(), 1)

	order = nil
	root.SetData("n", 2)
	FlushNow()

	assert.Equal(t, []string{
		"parent.beforeUpdate",
		"child.beforeUpdate",
		"child.updated",
		"parent.updated",
	}, order)

	childInstance := root.Children()[0]
	assert.Equal(t, 2, childInstance.Prop("n"))
}

// TestLifecycle_DestroyTearsDownWatchers covers the teardown half of the
// component lifecycle: destroying an instance marks it destroyed, fires its
// destroyed hook once, and leaves its render watcher inert, so a later write
// to data its render read no longer queues it.
func TestLifecycle_DestroyTearsDownWatchers(t *testing.T) {
	var destroyedCalls int
	opts := Normalize(&RawOptions{
		Name: "leaf",
		Data: func(*Instance) map[string]any {
			return map[string]any{"x": 1}
		},
		Destroyed: []LifecycleHook{func(*Instance) { destroyedCalls++ }},
		Render: func(ctx *Instance, h *H) *VNode {
			return h.CreateTextVNode(fmt.Sprintf("leaf %v", ctx.Data("x")))
		},
	})

	host := &fakeHost{}
	root := NewRootInstance(opts, host, nil)
	root.Mount(&fakeNode{tag: "root"})

	root.Destroy()

	assert.True(t, root.Destroyed())
	assert.Equal(t, 1, destroyedCalls)

	order := QueuedWatcherCount()
	root.SetData("x", 2)
	assert.Equal(t, order, QueuedWatcherCount(), "a destroyed instance's render watcher must not re-queue on data changes")
}
