package compose

// Dyn mounts a composable chosen at runtime. On each pass: a first-time
// Content mounts fresh with a new nested scope; a Content of the same
// structural id as the current mount is exchanged in place, preserving the
// nested scope and its hooks; a Content of a different id tears the old
// mount down (its drop callbacks fire) and mounts fresh. A nil Content
// re-drives whatever is currently mounted.
type Dyn struct {
	Content Composable
}

// Compose implements Composable.
func (d Dyn) Compose(cx *Scope) Composable {
	cx.container = true
	slot, fresh := cx.nextSlot(hookNode)
	if fresh {
		slot.value = &nodeCell{}
	}
	cell := slot.value.(*nodeCell)

	if d.Content == nil {
		if cell.n == nil {
			return nil
		}
		cell.n.scope.refreshContexts(cx)
		cell.n.scope.parentChanged = cx.parentChanged
		cell.n.drive()
		return nil
	}

	driveNested(cx, cell, d.Content, cx.parentChanged)
	return nil
}
