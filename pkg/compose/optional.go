package compose

// Optional composes zero or one child. A nil Content clears and tears down
// any cached child; a non-nil Content reuses the existing child scope or
// creates one on the first non-nil pass.
type Optional struct {
	Content Composable
}

// Compose implements Composable.
func (o Optional) Compose(cx *Scope) Composable {
	cx.container = true
	slot, fresh := cx.nextSlot(hookNode)
	if fresh {
		slot.value = &nodeCell{}
	}
	cell := slot.value.(*nodeCell)

	if o.Content == nil {
		if cell.n != nil {
			cx.dropNode(cell.n)
			cell.n = nil
		}
		return nil
	}

	driveNested(cx, cell, o.Content, cx.parentChanged)
	return nil
}
