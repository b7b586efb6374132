package compose

import (
	stderrors "errors"
)

// Composer owns a composition tree and re-evaluates it on demand. Hosts
// construct one with New, then call Compose whenever work is pending,
// typically driven by a NotifyUpdater hooked into their event loop.
//
// Composer methods are safe to call from any goroutine, but Compose is
// meant to be called from a single driving loop.
type Composer struct {
	rt   *Runtime
	root *node
	errs []error
}

// Option configures a Composer at construction.
type Option func(*Composer)

// WithUpdater replaces the default queueing Updater. Use NotifyUpdater
// to wake a host loop whenever state changes.
func WithUpdater(u Updater) Option {
	return func(c *Composer) {
		c.rt.updater = u
	}
}

// WithExecutor replaces the default goroutine-per-task Executor.
func WithExecutor(e Executor) Option {
	return func(c *Composer) {
		c.rt.executor = e
	}
}

// New builds a Composer rooted at content. Nothing composes until the
// first call to Compose.
func New(content Composable, opts ...Option) *Composer {
	c := &Composer{rt: newRuntime()}
	for _, opt := range opts {
		opt(c)
	}

	scope := newScope(c.rt)
	scope.contexts[contextKey[catchContext]()] = catchContext{
		cell: &catchCell{handler: func(err error) {
			c.errs = append(c.errs, err)
		}},
	}
	c.root = &node{
		value: content,
		id:    structuralID(content),
		scope: scope,
	}
	return c
}

// Compose runs one pass over the tree: ready background tasks are
// polled, deferred updates are applied, and then every node whose state
// or ancestry changed is recomposed. It returns the errors that reached
// the root during the pass, joined, or nil.
func (c *Composer) Compose() error {
	c.rt.mu.Lock()
	defer c.rt.mu.Unlock()

	for _, key := range c.rt.takeReady() {
		c.rt.pollTask(key)
	}
	for _, f := range c.rt.takeUpdates() {
		f()
	}

	c.errs = nil
	c.root.drive()
	return stderrors.Join(c.errs...)
}

// Pending reports whether another pass would do work: queued updates or
// tasks that have signaled readiness.
func (c *Composer) Pending() bool {
	return c.rt.pending()
}

// Close tears down the whole tree, firing every drop hook. The Composer
// must not be used afterwards.
func (c *Composer) Close() {
	c.rt.mu.Lock()
	defer c.rt.mu.Unlock()
	c.root.teardown()
}

// TreeNode is a point-in-time description of one node in the tree, used
// by debugging and test tooling.
type TreeNode struct {
	Type      string      `json:"type" yaml:"type"`
	Container bool        `json:"container,omitempty" yaml:"container,omitempty"`
	Empty     bool        `json:"empty,omitempty" yaml:"empty,omitempty"`
	Hooks     []string    `json:"hooks,omitempty" yaml:"hooks,omitempty"`
	Children  []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tree snapshots the current composition tree under the write guard.
func (c *Composer) Tree() *TreeNode {
	c.rt.mu.Lock()
	defer c.rt.mu.Unlock()
	return snapshotNode(c.root)
}

func snapshotNode(n *node) *TreeNode {
	if n == nil {
		return nil
	}
	t := &TreeNode{
		Type:      typeName(n.value),
		Container: n.scope.container,
		Empty:     n.scope.empty,
	}
	for i := range n.scope.hooks {
		t.Hooks = append(t.Hooks, n.scope.hooks[i].kind.String())
	}
	for _, child := range n.scope.nodes {
		t.Children = append(t.Children, snapshotNode(child))
	}
	return t
}
