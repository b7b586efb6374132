// Package compose provides the reactive composition engine and lifecycle.
//
// This package defines the foundational types for building incrementally
// re-evaluated trees of stateful units: Composable, Scope, Runtime, and
// Composer. It follows a declarative model where composables describe the
// tree and the engine re-runs only the subtrees whose own state or ancestor
// state changed, leaving every other subtree's persistent per-node state
// untouched across passes.
//
// # Core Types
//
// Composable is a unit of behavior. Its Compose method runs with a Scope
// and returns at most one child composable; returning nil makes the node a
// terminal leaf. Composables are lightweight configuration values that are
// recreated freely on every pass; their persistent state lives in hooks.
//
// Scope is the per-node handle passed to Compose. It bundles the node's
// hook slots, change flags, and ancestor context lookup. A node's scope
// survives recomposition: when a parent re-runs and produces a child of the
// same type, the child value is exchanged in place and the existing scope,
// with all of its hooks and tasks, is reused.
//
// Composer owns the root of a tree and drives one pass at a time. A pass
// polls ready tasks, applies queued state updates under the runtime's
// write guard, and then walks the tree top to bottom deciding per node
// whether to skip or recompose.
//
// # Hooks
//
// Functions that begin with Use are hooks. Hooks are the only sanctioned
// way a Compose body touches persistent state:
//
//	func (c Counter) Compose(cx *compose.Scope) compose.Composable {
//	    count := compose.UseMut(cx, func() int { return 0 })
//	    compose.UseDrop(cx, func() { log.Println("counter removed") })
//	    ...
//	}
//
// Hooks must be called in the same order, the same number of times, on
// every pass of a given node. Don't call hooks inside conditionals or
// loops; the engine detects a changed hook sequence and panics.
//
// # Composable Fields
//
// Values stored in hooks outlive the pass that created them. Composable
// fields must therefore be self-contained values: never capture a pointer
// whose validity is bounded to the current pass into hook storage.
//
// # Combinators
//
// Group, Optional, Fallible, Catch, Dyn, Memo, and ForEach compose
// multiple children, gate recomposition, and bridge runtime-chosen types.
// They are ordinary composables built from the same primitives.
package compose
