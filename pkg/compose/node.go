package compose

import (
	"reflect"
	"time"

	"github.com/go-loom/loom/pkg/errors"
)

// node pairs an owned composable value with its structural id and scope.
// It is created when first mounted by a parent or the Composer and
// destroyed when its owning slot is torn down.
type node struct {
	value Composable
	id    reflect.Type
	scope *Scope
	child *node
}

// reborrow exchanges the stored value in place. Valid only when the
// incoming value's structural id equals the node's; the nested scope and
// all of its hooks and tasks are preserved.
func (n *node) reborrow(c Composable) bool {
	if structuralID(c) != n.id {
		return false
	}
	n.value = c
	return true
}

// drive walks this node for the pass in progress: decide skip or
// recompose, exchange or remount the produced child, then recurse.
func (n *node) drive() {
	s := n.scope
	s.hookIdx = 0

	run := false
	switch {
	case !s.empty && n.child == nil && !s.sealed:
		// Never composed.
		run = true
	case s.changed:
		s.changed = false
		run = true
	case s.parentChanged:
		run = true
	case s.container:
		run = true
	}

	if run {
		child, ok := n.safeCompose()
		if !ok {
			// The failing subtree rebuilds from scratch next pass.
			if n.child != nil {
				s.dropNode(n.child)
				n.child = nil
			}
			s.reset()
			return
		}
		s.generation++

		if child == nil {
			s.empty = true
			if n.child != nil {
				s.dropNode(n.child)
				n.child = nil
			}
		} else {
			s.empty = false
			if n.child == nil || !n.child.reborrow(child) {
				if n.child != nil {
					s.dropNode(n.child)
				}
				n.child = s.mountChild(child)
			}
			n.child.scope.refreshContexts(s)
			n.child.scope.parentChanged = true
		}
		s.seal()
	} else if n.child != nil {
		n.child.scope.parentChanged = false
	}

	// Skipping only gates this node's own body; the child's nested drive
	// applies its own skip decision.
	if n.child != nil {
		n.child.drive()
	}
}

// safeCompose executes the compose body with panic recovery. A recovered
// panic is reported and routed to the nearest ancestor catch handler.
func (n *node) safeCompose() (child Composable, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, violated := r.(hookSequenceError); violated {
				panic(r)
			}
			err := &errors.ComposeError{
				Composable: typeName(n.value),
				Recovered:  r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			}
			errors.ReportComposeError(err)
			n.scope.throw(err)
			child = nil
			ok = false
		}
	}()
	return n.value.Compose(n.scope), true
}

func (n *node) teardown() {
	n.scope.teardown()
	n.child = nil
	n.value = nil
}
