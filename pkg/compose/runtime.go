package compose

import "sync"

// Update is a pending mutation of composition state. It is created by
// mutation handles and task wakers, handed to the tree's Updater, and
// destroyed after being applied.
type Update struct {
	rt *Runtime
	f  func()
}

// Apply runs the update under the runtime's write guard, so it never
// overlaps an in-progress pass. Host event loops holding an Update may
// call Apply at any time from any goroutine.
func (u Update) Apply() {
	u.rt.mu.Lock()
	defer u.rt.mu.Unlock()
	u.f()
}

// Updater integrates a composition tree with a host event loop. The single
// obligation is to accept a pending update and guarantee it is applied
// before or during the next pass, either by calling Apply directly or by
// leaving it queued for the Composer to drain.
type Updater interface {
	Update(u Update)
}

// queueUpdater is the default Updater: it parks updates on the runtime's
// update queue, which the Composer drains at the start of each pass.
type queueUpdater struct {
	rt *Runtime
}

func (q queueUpdater) Update(u Update) {
	q.rt.enqueueUpdate(u.f)
}

// NotifyUpdater queues updates like the default Updater and additionally
// invokes Notify, letting a host loop schedule a pass on demand. Notify
// may be called from any goroutine.
type NotifyUpdater struct {
	// Notify signals that a pass should run. Must be non-nil.
	Notify func()
}

// Update queues u and fires Notify.
func (n *NotifyUpdater) Update(u Update) {
	u.rt.enqueueUpdate(u.f)
	n.Notify()
}

// Runtime is shared by every node in one Composer's tree. It holds the
// task table, the ready queue, the update queue, and the write guard that
// keeps deferred mutations from overlapping a drive.
//
// The ready queue and update queue are safe for concurrent producers; all
// other composition state is touched only by the driving goroutine.
type Runtime struct {
	// mu is the write guard shared by passes, update application, and
	// task execution.
	mu sync.Mutex

	updater  Updater
	executor Executor

	updateMu sync.Mutex
	updates  []func()

	readyMu sync.Mutex
	ready   []uint64

	taskMu   sync.Mutex
	tasks    map[uint64]Task
	nextTask uint64
}

func newRuntime() *Runtime {
	rt := &Runtime{tasks: make(map[uint64]Task)}
	rt.updater = queueUpdater{rt: rt}
	rt.executor = GoExecutor{}
	return rt
}

// Update defers f through the tree's Updater. f will observe and mutate
// composition state under the write guard, before or during the next pass.
func (rt *Runtime) Update(f func()) {
	rt.updater.Update(Update{rt: rt, f: f})
}

func (rt *Runtime) enqueueUpdate(f func()) {
	rt.updateMu.Lock()
	rt.updates = append(rt.updates, f)
	rt.updateMu.Unlock()
}

// takeUpdates drains the update queue.
func (rt *Runtime) takeUpdates() []func() {
	rt.updateMu.Lock()
	defer rt.updateMu.Unlock()
	updates := rt.updates
	rt.updates = nil
	return updates
}

func (rt *Runtime) pushReady(key uint64) {
	rt.readyMu.Lock()
	rt.ready = append(rt.ready, key)
	rt.readyMu.Unlock()
}

// takeReady drains the ready queue.
func (rt *Runtime) takeReady() []uint64 {
	rt.readyMu.Lock()
	defer rt.readyMu.Unlock()
	ready := rt.ready
	rt.ready = nil
	return ready
}

// pending reports whether queued updates or ready tasks are waiting for
// the next pass.
func (rt *Runtime) pending() bool {
	rt.updateMu.Lock()
	hasUpdates := len(rt.updates) > 0
	rt.updateMu.Unlock()
	if hasUpdates {
		return true
	}
	rt.readyMu.Lock()
	defer rt.readyMu.Unlock()
	return len(rt.ready) > 0
}
