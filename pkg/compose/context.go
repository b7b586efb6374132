package compose

import (
	"fmt"
	"reflect"
)

// ContextError reports a context lookup that found no provider for the
// requested type. It is recoverable: callers typically fall back to a
// default or treat the value as optional.
type ContextError struct {
	// Type is the requested context value type.
	Type reflect.Type
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("compose: no context value provided for type %s", e.Type)
}

func contextKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// UseContext looks up the nearest ancestor-provided value of type T,
// starting at this node's own providers. It returns a ContextError when no
// provider of T is in scope.
//
// UseContext does not consume a hook slot and may be called conditionally.
func UseContext[T any](cx *Scope) (T, error) {
	key := contextKey[T]()
	if v, ok := cx.provided[key]; ok {
		return v.(T), nil
	}
	if v, ok := cx.contexts[key]; ok {
		return v.(T), nil
	}
	var zero T
	return zero, &ContextError{Type: key}
}

// UseProvider computes a value once and publishes it under its type for
// every descendant scope, until shadowed by a nearer provider of the same
// type. make runs once, with UseRef semantics.
func UseProvider[T any](cx *Scope, make func() T) T {
	v := UseRef(cx, func() T {
		value := make()
		cx.provide(contextKey[T](), value)
		return value
	})
	return *v
}
