package reactui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_PropsShorthand(t *testing.T) {
	opt := Normalize(&RawOptions{Props: []string{"title", "count"}})
	require.Len(t, opt.Props, 2)
	assert.Equal(t, PropDef{Type: PropAny}, opt.Props["title"])
	assert.Equal(t, PropDef{Type: PropAny}, opt.Props["count"])
}

func TestNormalize_InjectShorthand(t *testing.T) {
	opt := Normalize(&RawOptions{Inject: []string{"theme"}})
	require.Len(t, opt.Inject, 1)
	assert.Equal(t, InjectDef{From: "theme"}, opt.Inject["theme"])
}

func TestNormalize_ProvideMapShorthand(t *testing.T) {
	opt := Normalize(&RawOptions{Provide: map[string]any{"theme": "dark"}})
	require.NotNil(t, opt.Provide)
	assert.Equal(t, map[string]any{"theme": "dark"}, opt.Provide(nil))
}

func TestNormalize_DirectiveFunctionShorthandExpandsToBindAndUpdate(t *testing.T) {
	var calls []string
	fn := RawDirectiveFuncs(func(*VNode, any) { calls = append(calls, "called") })
	opt := Normalize(&RawOptions{Directives: map[string]any{"focus": fn}})

	expanded, ok := opt.Directives["focus"].(map[string]RawDirectiveFuncs)
	require.True(t, ok)
	expanded["bind"](nil, nil)
	expanded["update"](nil, nil)
	assert.Equal(t, []string{"called", "called"}, calls)
}

func TestNormalize_ExtendsFoldsBaseUnderChild(t *testing.T) {
	base := &RawOptions{
		Methods: map[string]any{"baseMethod": func() {}},
		Data:    func(*Instance) map[string]any { return map[string]any{"a": 1} },
	}
	child := &RawOptions{
		Extends: base,
		Methods: map[string]any{"childMethod": func() {}},
		Data:    func(*Instance) map[string]any { return map[string]any{"b": 2} },
	}

	opt := Normalize(child)
	assert.Contains(t, opt.Methods, "baseMethod")
	assert.Contains(t, opt.Methods, "childMethod")

	merged := opt.Data(nil)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, merged)
}

func TestMergeOptions_DataDeepMergesWithChildPrecedence(t *testing.T) {
	parent := Normalize(&RawOptions{
		Data: func(*Instance) map[string]any {
			return map[string]any{"shared": "parent", "onlyParent": 1}
		},
	})
	child := Normalize(&RawOptions{
		Data: func(*Instance) map[string]any {
			return map[string]any{"shared": "child", "onlyChild": 2}
		},
	})

	merged := mergeOptions(parent, child)
	data := merged.Data(nil)
	assert.Equal(t, "child", data["shared"], "child data must win on key collision")
	assert.Equal(t, 1, data["onlyParent"])
	assert.Equal(t, 2, data["onlyChild"])
}

func TestMergeOptions_LifecycleHooksConcatenateParentThenChild(t *testing.T) {
	var order []string
	parent := Normalize(&RawOptions{
		Created: []LifecycleHook{func(*Instance) { order = append(order, "parent") }},
	})
	child := Normalize(&RawOptions{
		Created: []LifecycleHook{func(*Instance) { order = append(order, "child") }},
	})

	merged := mergeOptions(parent, child)
	require.Len(t, merged.Created, 2)
	for _, hook := range merged.Created {
		hook(nil)
	}
	assert.Equal(t, []string{"parent", "child"}, order)
}

func TestMergeOptions_WatchEntriesConcatenatePerKey(t *testing.T) {
	parent := Normalize(&RawOptions{
		Watch: map[string][]WatchDef{"x": {{Handler: func(*Instance, any, any) {}}}},
	})
	child := Normalize(&RawOptions{
		Watch: map[string][]WatchDef{"x": {{Handler: func(*Instance, any, any) {}}}},
	})

	merged := mergeOptions(parent, child)
	assert.Len(t, merged.Watch["x"], 2)
}

func TestMergeOptions_AssetsFallBackFromChildToParent(t *testing.T) {
	widget := &Options{Name: "widget"}
	parent := Normalize(&RawOptions{Components: map[string]*Options{"widget": widget}})
	child := Normalize(&RawOptions{})

	merged := mergeOptions(parent, child)
	got, ok := resolveAsset(merged.Components, "widget")
	require.True(t, ok)
	assert.Same(t, widget, got)
}

func TestResolveAsset_CamelAndPascalCaseFallback(t *testing.T) {
	widget := &Options{Name: "my-widget"}
	assets := map[string]*Options{"myWidget": widget}

	got, ok := resolveAsset(assets, "my-widget")
	require.True(t, ok, "kebab-case id must resolve against a camelCase-registered asset")
	assert.Same(t, widget, got)

	assetsPascal := map[string]*Options{"MyWidget": widget}
	got2, ok2 := resolveAsset(assetsPascal, "my-widget")
	require.True(t, ok2, "kebab-case id must resolve against a PascalCase-registered asset")
	assert.Same(t, widget, got2)

	_, ok3 := resolveAsset(assets, "unknown-widget")
	assert.False(t, ok3)
}

func TestValidateComponentName_WarnsOnReservedName(t *testing.T) {
	prevLogger := logger
	var warnings []string
	SetLogger(fakeLogger{onWarn: func(format string, args ...any) { warnings = append(warnings, format) }})
	defer SetLogger(prevLogger)

	Normalize(&RawOptions{Name: "slot"})
	require.Len(t, warnings, 1)
}
