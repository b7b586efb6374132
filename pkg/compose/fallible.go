package compose

import (
	"time"

	"github.com/go-loom/loom/pkg/errors"
)

// catchContext routes composable errors to the nearest ancestor catch
// handler. The cell indirection keeps the provided value stable across
// passes while the handler is swapped for the latest one.
type catchContext struct {
	cell *catchCell
}

type catchCell struct {
	handler func(error)
}

// throw reports err to the nearest ancestor catch handler. Propagation is
// dynamically scoped through the context map, not lexical. A tree driven
// by a Composer always has a root handler installed; a node driven without
// one is a configuration defect and the error is reported globally.
func (s *Scope) throw(err error) {
	catch, lookupErr := UseContext[catchContext](s)
	if lookupErr != nil {
		errors.Report(&errors.LoomError{
			Op:        "compose.throw",
			Kind:      errors.KindCompose,
			Err:       err,
			Timestamp: time.Now(),
		})
		return
	}
	catch.cell.handler(err)
}

// Fallible composes Content when Err is nil, behaving like an Optional
// holding a value. A non-nil Err tears down any cached child and reports
// the error to the nearest ancestor Catch handler instead of to the caller
// of this node's drive.
type Fallible struct {
	Content Composable
	Err     error
}

// Compose implements Composable.
func (f Fallible) Compose(cx *Scope) Composable {
	cx.container = true
	slot, fresh := cx.nextSlot(hookNode)
	if fresh {
		slot.value = &nodeCell{}
	}
	cell := slot.value.(*nodeCell)

	if f.Err != nil {
		if cell.n != nil {
			cx.dropNode(cell.n)
			cell.n = nil
		}
		cx.throw(f.Err)
		return nil
	}
	if f.Content == nil {
		if cell.n != nil {
			cx.dropNode(cell.n)
			cell.n = nil
		}
		return nil
	}

	driveNested(cx, cell, f.Content, cx.parentChanged)
	return nil
}

// Catch returns a composable that intercepts composable errors reported by
// any descendant of content, until shadowed by a nearer Catch. The handler
// receives the opaque error value and decides disposition.
func Catch(handler func(error), content Composable) Composable {
	return catcher{handler: handler, content: content}
}

type catcher struct {
	handler func(error)
	content Composable
}

func (c catcher) Compose(cx *Scope) Composable {
	cell := UseRef(cx, func() catchCell { return catchCell{} })
	cx.provide(contextKey[catchContext](), catchContext{cell: cell})
	cell.handler = c.handler
	return c.content
}
