// Package reactui implements the reactive rendering core of a component-based
// UI runtime: an observer/dependency graph, a batching scheduler, component
// option merging and lifecycle, a virtual-node render tree, and a diff-based
// patch algorithm that reconciles vnode trees against an injected host.
//
// The package does not know how to draw anything on screen. It talks to two
// collaborators supplied by the embedder: a Host (pkg/reactui's Host
// interface) that performs primitive node operations, and a set of Modules
// that hook into per-vnode create/update/destroy events. See pkg/termhost and
// pkg/modules/attrstyle for the concrete implementations this repository
// ships.
package reactui
