package compose

import (
	"fmt"
	"maps"
	"reflect"
)

// hookKind tags a hook slot so a changed hook sequence is detected instead
// of silently corrupting state.
type hookKind int

const (
	hookRef hookKind = iota
	hookMut
	hookMemo
	hookDrop
	hookCallback
	hookNode
	hookNodes
)

func (k hookKind) String() string {
	switch k {
	case hookRef:
		return "UseRef"
	case hookMut:
		return "UseMut"
	case hookMemo:
		return "UseMemo"
	case hookDrop:
		return "UseDrop"
	case hookCallback:
		return "UseCallback"
	case hookNode:
		return "child node"
	case hookNodes:
		return "child nodes"
	default:
		return "unknown hook"
	}
}

type hookSlot struct {
	kind  hookKind
	value any
}

// hookSequenceError is the panic value for a violated hook sequence. It is
// never converted to a recoverable compose error: a changed hook order is a
// programming defect, not runtime input.
type hookSequenceError string

func (e hookSequenceError) Error() string { return string(e) }

// Scope is the per-node handle passed to every Compose call. It owns the
// node's persistent hook slots, change flags, context maps, and teardown
// callbacks. A scope is created when its node is first mounted and survives
// until the node is torn down.
type Scope struct {
	rt *Runtime

	hooks   []hookSlot
	hookIdx int
	sealed  bool

	changed       bool
	parentChanged bool
	container     bool
	empty         bool

	// contexts holds ancestor-provided values; provided holds values this
	// node publishes for its descendants.
	contexts map[reflect.Type]any
	provided map[reflect.Type]any

	drops []func()
	nodes []*node

	generation uint64
	dead       bool
}

func newScope(rt *Runtime) *Scope {
	return &Scope{
		rt:       rt,
		contexts: make(map[reflect.Type]any),
	}
}

// SetChanged marks this scope as changed, forcing its node to recompose on
// the next pass it is driven.
func (s *Scope) SetChanged() {
	s.changed = true
}

// ParentChanged reports whether an ancestor of this scope recomposed during
// the pass in progress. The flag is recomputed every pass.
func (s *Scope) ParentChanged() bool {
	return s.parentChanged
}

// Generation returns the number of times this scope's node has recomposed.
func (s *Scope) Generation() uint64 {
	return s.generation
}

// Runtime returns the runtime shared by every node in this scope's tree.
func (s *Scope) Runtime() *Runtime {
	return s.rt
}

// nextSlot returns the hook slot at the cursor, validating the sequence
// invariant: the same hooks, in the same order, every pass.
func (s *Scope) nextSlot(kind hookKind) (*hookSlot, bool) {
	idx := s.hookIdx
	s.hookIdx++

	if idx < len(s.hooks) {
		slot := &s.hooks[idx]
		if slot.kind != kind {
			panic(hookSequenceError(fmt.Sprintf(
				"compose: hook order changed between passes: slot %d was %s, now %s; hooks must not be called conditionally",
				idx, slot.kind, kind)))
		}
		return slot, false
	}
	if s.sealed {
		panic(hookSequenceError(fmt.Sprintf(
			"compose: hook order changed between passes: %s called at slot %d but only %d hooks ran on the first pass",
			kind, idx, len(s.hooks))))
	}
	s.hooks = append(s.hooks, hookSlot{kind: kind})
	return &s.hooks[idx], true
}

// seal freezes the hook slot count after the first completed compose. A
// later pass that consumes fewer slots violates the hook sequence contract.
func (s *Scope) seal() {
	if !s.sealed {
		s.sealed = true
		return
	}
	if s.hookIdx != len(s.hooks) {
		panic(hookSequenceError(fmt.Sprintf(
			"compose: hook order changed between passes: %d hooks ran, first pass ran %d",
			s.hookIdx, len(s.hooks))))
	}
}

// refreshContexts replaces this scope's inherited context map with the
// parent's inherited values merged with the parent's provided values, so a
// nearer provider of the same type shadows an outer one.
func (s *Scope) refreshContexts(parent *Scope) {
	merged := make(map[reflect.Type]any, len(parent.contexts)+len(parent.provided))
	maps.Copy(merged, parent.contexts)
	maps.Copy(merged, parent.provided)
	s.contexts = merged
}

func (s *Scope) provide(key reflect.Type, value any) {
	if s.provided == nil {
		s.provided = make(map[reflect.Type]any)
	}
	s.provided[key] = value
}

// mountChild creates a node for c under this scope, snapshotting the
// current context map into the child.
func (s *Scope) mountChild(c Composable) *node {
	n := &node{
		value: c,
		id:    structuralID(c),
		scope: newScope(s.rt),
	}
	n.scope.refreshContexts(s)
	s.nodes = append(s.nodes, n)
	return n
}

// dropNode tears n down and removes it from this scope's registry.
func (s *Scope) dropNode(n *node) {
	for i, owned := range s.nodes {
		if owned == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			break
		}
	}
	n.teardown()
}

// teardown cascades into nested nodes first, then runs this scope's drop
// callbacks in reverse registration order. Safe to call once.
func (s *Scope) teardown() {
	if s.dead {
		return
	}
	s.dead = true

	for _, n := range s.nodes {
		n.teardown()
	}
	s.nodes = nil

	for i := len(s.drops) - 1; i >= 0; i-- {
		s.drops[i]()
	}
	s.drops = nil
	s.hooks = nil
}

// reset clears all persistent state so the node rebuilds from scratch on
// the next pass. Used after a compose failure.
func (s *Scope) reset() {
	for _, n := range s.nodes {
		n.teardown()
	}
	s.nodes = nil

	for i := len(s.drops) - 1; i >= 0; i-- {
		s.drops[i]()
	}
	s.drops = nil
	s.hooks = nil
	s.hookIdx = 0
	s.sealed = false
	s.changed = false
	s.container = false
	s.empty = false
	s.provided = nil
}
