package compose

import "reflect"

// UseRef returns a reference to a value stored in the next hook slot.
// make runs once, on the node's first pass; every later pass returns the
// same stored value unchanged.
//
// Example:
//
//	conn := compose.UseRef(cx, func() *Client {
//	    return Dial(addr)
//	})
func UseRef[T any](cx *Scope, make func() T) *T {
	slot, fresh := cx.nextSlot(hookRef)
	if fresh {
		v := make()
		slot.value = &v
	}
	return slot.value.(*T)
}

// mutState is the backing storage for a UseMut slot.
type mutState[T any] struct {
	value      T
	generation uint64
}

// Mut is a handle to mutable hook state. Reads are immediate; mutations
// are deferred through the runtime's update queue so they never overlap an
// in-progress pass.
type Mut[T any] struct {
	state *mutState[T]
	scope *Scope
}

// UseMut stores a value in the next hook slot and returns a mutation
// handle for it. make runs once, on the node's first pass.
func UseMut[T any](cx *Scope, make func() T) Mut[T] {
	slot, fresh := cx.nextSlot(hookMut)
	if fresh {
		slot.value = &mutState[T]{value: make()}
	}
	return Mut[T]{state: slot.value.(*mutState[T]), scope: cx}
}

// Value returns the current value.
func (m Mut[T]) Value() T {
	return m.state.value
}

// Generation returns the number of applied updates, usable as a cheap
// memoization key for the value.
func (m Mut[T]) Generation() uint64 {
	return m.state.generation
}

// Update queues a mutation and marks the owning scope changed, triggering
// a recomposition of its node. The mutation is applied under the runtime's
// write guard before the next pass drives the tree.
func (m Mut[T]) Update(f func(*T)) {
	state, scope := m.state, m.scope
	scope.rt.Update(func() {
		f(&state.value)
		state.generation++
		scope.changed = true
	})
}

// With queues a mutation like Update but without marking the scope
// changed; the node will not recompose on account of this write.
func (m Mut[T]) With(f func(*T)) {
	state := m.state
	m.scope.rt.Update(func() {
		f(&state.value)
	})
}

// memoState is the backing storage for a UseMemo slot.
type memoState struct {
	dep   any
	value any
	init  bool
}

// UseMemo stores a value and a snapshot of dependency. On each pass the
// new dependency is compared against the snapshot; the value is recomputed
// only on inequality.
func UseMemo[D, T any](cx *Scope, dependency D, make func() T) T {
	slot, fresh := cx.nextSlot(hookMemo)
	if fresh {
		slot.value = &memoState{}
	}
	state := slot.value.(*memoState)

	if !state.init {
		state.init = true
		state.dep = dependency
		state.value = make()
	} else if !reflect.DeepEqual(state.dep, dependency) {
		state.dep = dependency
		state.value = make()
	}
	return state.value.(T)
}

// dropCell lets UseDrop swap in the latest callback while keeping a single
// registration that fires exactly once.
type dropCell struct {
	f func()
}

// UseDrop registers f to run exactly once, when the owning scope is torn
// down: a container shrinking past this node, an optional clearing, a
// dynamic type-mismatch rebuild, or an ancestor teardown cascading down.
// On later passes the pending callback is replaced with the latest f.
func UseDrop(cx *Scope, f func()) {
	slot, fresh := cx.nextSlot(hookDrop)
	if fresh {
		cell := &dropCell{}
		slot.value = cell
		cx.drops = append(cx.drops, func() {
			if cell.f != nil {
				cell.f()
				cell.f = nil
			}
		})
	}
	slot.value.(*dropCell).f = f
}

type callbackCell[T, R any] struct {
	f func(T) R
}

// Callback is a stable-identity wrapper around a function. The identity of
// the handle never changes across passes, while the wrapped function is
// swapped for the latest one on every recomposition. Consumers comparing
// by identity (for example through UseMemo) therefore never observe a
// change.
type Callback[T, R any] struct {
	cell *callbackCell[T, R]
}

// UseCallback wraps f in a stable-identity Callback handle.
func UseCallback[T, R any](cx *Scope, f func(T) R) Callback[T, R] {
	slot, fresh := cx.nextSlot(hookCallback)
	if fresh {
		slot.value = &callbackCell[T, R]{}
	}
	cell := slot.value.(*callbackCell[T, R])
	cell.f = f
	return Callback[T, R]{cell: cell}
}

// Call invokes the latest function wrapped by this handle.
func (c Callback[T, R]) Call(v T) R {
	return c.cell.f(v)
}

// Equal reports whether two handles share the same identity.
func (c Callback[T, R]) Equal(other Callback[T, R]) bool {
	return c.cell == other.cell
}
