package compose

import (
	"reflect"
	"strings"
)

// Composable is a unit of behavior in the composition tree.
//
// Compose runs with the node's scope and returns at most one child.
// The child must be computed purely from the composable's own field data
// plus whatever it reads from hooks and contexts; side effects are limited
// to hook registration, context provision, update enqueueing, and drop
// registration. Returning nil marks the node as a terminal leaf.
//
// Field values must be safe to retain beyond the current pass; see the
// package documentation.
type Composable interface {
	Compose(cx *Scope) Composable
}

// ComposeFunc adapts a plain function to the Composable interface.
//
// All ComposeFunc values share one structural identity, so a node mounted
// from one keeps its scope and hooks when the parent supplies a different
// closure on a later pass; only the captured environment is exchanged.
type ComposeFunc func(cx *Scope) Composable

// Compose calls f.
func (f ComposeFunc) Compose(cx *Scope) Composable { return f(cx) }

// structuralID returns the type-level tag deciding whether two composable
// values are interchangeable via in-place exchange.
func structuralID(c Composable) reflect.Type {
	return reflect.TypeOf(c)
}

// typeName returns a short display name for a composable value, without
// package path or type-parameter noise.
func typeName(c Composable) string {
	if c == nil {
		return ""
	}
	t := reflect.TypeOf(c)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.String()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
