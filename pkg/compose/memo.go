package compose

import "reflect"

// Memo gates recomposition of Content on a comparison key, isolating an
// expensive subtree from unrelated ancestor re-evaluation. On the first
// pass the key is snapshotted and Content is forced to run. On later
// passes Content is forced only when the key compares unequal to the
// snapshot; on equality it is still driven, so a subtree that marks its
// own scope changed recomposes regardless of the key.
//
// Key must be comparable by reflect.DeepEqual and is retained across
// passes by value.
type Memo struct {
	Key     any
	Content Composable
}

type memoSnapshot struct {
	key  any
	init bool
}

// Compose implements Composable.
func (m Memo) Compose(cx *Scope) Composable {
	cx.container = true

	snap := UseRef(cx, func() memoSnapshot { return memoSnapshot{} })
	slot, fresh := cx.nextSlot(hookNode)
	if fresh {
		slot.value = &nodeCell{}
	}
	cell := slot.value.(*nodeCell)

	forced := false
	switch {
	case !snap.init:
		snap.init = true
		snap.key = m.Key
		forced = true
	case !reflect.DeepEqual(snap.key, m.Key):
		snap.key = m.Key
		forced = true
	}

	driveNested(cx, cell, m.Content, forced)
	return nil
}
