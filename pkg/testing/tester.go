package testing

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-loom/loom/pkg/compose"
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: composition did not settle")

// ComposerTester drives a composition tree deterministically, without a
// host event loop. Each Pump runs exactly one pass, and a fake clock
// stands in for real time.
type ComposerTester struct {
	composer *compose.Composer
	clock    *FakeClock
	updates  atomic.Int64
	closed   bool
}

// NewTester creates a tester rooted at content.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester(content compose.Composable, opts ...compose.Option) *ComposerTester {
	tester := &ComposerTester{clock: NewFakeClock()}
	// The counting updater goes first so a caller's WithUpdater still wins.
	opts = append([]compose.Option{compose.WithUpdater(&compose.NotifyUpdater{
		Notify: func() { tester.updates.Add(1) },
	})}, opts...)
	tester.composer = compose.New(content, opts...)
	return tester
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T, content compose.Composable, opts ...compose.Option) *ComposerTester {
	tester := NewTester(content, opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup tears down the composition tree, firing every drop hook. Must
// be called if not using NewTesterWithT.
func (t *ComposerTester) Cleanup() {
	if t.closed {
		return
	}
	t.closed = true
	t.composer.Close()
}

// Composer returns the underlying composer.
func (t *ComposerTester) Composer() *compose.Composer {
	return t.composer
}

// Clock returns the fake clock for advancing time in tests.
func (t *ComposerTester) Clock() *FakeClock {
	return t.clock
}

// UpdateCount reports how many updates have been scheduled since the
// tester was created, including updates already applied by a pass.
func (t *ComposerTester) UpdateCount() int {
	return int(t.updates.Load())
}

// Pump runs a single composition pass.
func (t *ComposerTester) Pump() error {
	return t.composer.Compose()
}

// PumpTimes runs n passes, stopping at the first error.
func (t *ComposerTester) PumpTimes(n int) error {
	for i := 0; i < n; i++ {
		if err := t.composer.Compose(); err != nil {
			return err
		}
	}
	return nil
}

// PumpAndSettle runs passes until no updates or ready tasks remain, or
// the timeout is reached. Each pass advances the fake clock by 16ms.
// Returns ErrSettleTimeout if the tree does not settle within timeout.
func (t *ComposerTester) PumpAndSettle(timeout time.Duration) error {
	const frameDuration = 16 * time.Millisecond
	var elapsed time.Duration
	for elapsed <= timeout {
		if err := t.composer.Compose(); err != nil {
			return err
		}
		if !t.composer.Pending() {
			return nil
		}
		t.clock.Advance(frameDuration)
		elapsed += frameDuration
	}
	return ErrSettleTimeout
}

// Tree snapshots the current composition tree.
func (t *ComposerTester) Tree() *compose.TreeNode {
	return t.composer.Tree()
}
