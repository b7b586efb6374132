package compose

import "context"

// Task is one unit of cooperative asynchronous work owned by a node. The
// composer invokes it once each time its waker has fired, before the next
// pass drives the tree. Returning true completes the task and removes it
// from the task table.
type Task func(w Waker) (done bool)

// Waker signals that a task is ready to run again. Wake is safe to call
// from any goroutine.
type Waker interface {
	Wake()
}

type taskWaker struct {
	rt  *Runtime
	key uint64
}

// Wake parks the task's key on the ready queue and nudges the Updater so a
// host loop knows a pass is wanted.
func (w *taskWaker) Wake() {
	w.rt.pushReady(w.key)
	w.rt.Update(func() {})
}

// Executor spawns units of asynchronous work for UseTask. The engine
// requires only that spawned work eventually runs to completion.
type Executor interface {
	Spawn(f func())
}

// GoExecutor runs each unit of work on its own goroutine. It is the
// default Executor.
type GoExecutor struct{}

// Spawn starts f on a new goroutine.
func (GoExecutor) Spawn(f func()) { go f() }

func (rt *Runtime) addTask(t Task) uint64 {
	rt.taskMu.Lock()
	defer rt.taskMu.Unlock()
	key := rt.nextTask
	rt.nextTask++
	rt.tasks[key] = t
	return key
}

func (rt *Runtime) removeTask(key uint64) {
	rt.taskMu.Lock()
	delete(rt.tasks, key)
	rt.taskMu.Unlock()
}

// pollTask runs the task registered under key once. Completed or removed
// tasks are ignored.
func (rt *Runtime) pollTask(key uint64) {
	rt.taskMu.Lock()
	task, ok := rt.tasks[key]
	rt.taskMu.Unlock()
	if !ok {
		return
	}
	if task(&taskWaker{rt: rt, key: key}) {
		rt.removeTask(key)
	}
}

// UseLocalTask registers a cooperative task owned by this node. make runs
// once; the task is polled for the first time before the next pass and
// after that whenever its waker fires. Tearing down the scope removes the
// task from the table, so a pending wake becomes a no-op.
func UseLocalTask(cx *Scope, make func() Task) {
	key := UseRef(cx, func() uint64 {
		k := cx.rt.addTask(make())
		cx.rt.pushReady(k)
		return k
	})
	rt := cx.rt
	UseDrop(cx, func() {
		rt.removeTask(*key)
	})
}

// UseTask spawns f through the runtime's Executor, once, on the node's
// first pass. The supplied context is canceled when the owning scope is
// torn down; f is expected to observe cancellation and return. State
// produced by f must flow back through Mut handles or Runtime.Update so it
// is applied under the write guard.
func UseTask(cx *Scope, f func(ctx context.Context)) {
	cancel := UseRef(cx, func() context.CancelFunc {
		ctx, cancel := context.WithCancel(context.Background())
		cx.rt.executor.Spawn(func() { f(ctx) })
		return cancel
	})
	UseDrop(cx, func() {
		(*cancel)()
	})
}
