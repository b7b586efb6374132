package compose

// Group composes a fixed sequence of composables. Each element gets a
// dedicated persistent scope keyed by position; the parent's context map
// and parent-changed flag are copied into every element's scope on each
// pass, and every element is driven on each pass the group runs. Skip
// decisions are made strictly by each element's own nested drive.
type Group []Composable

// Compose implements Composable.
func (g Group) Compose(cx *Scope) Composable {
	cx.container = true
	slot, fresh := cx.nextSlot(hookNodes)
	if fresh {
		slot.value = &[]*node{}
	}
	entries := slot.value.(*[]*node)

	resizeEntries(cx, entries, len(g), func(i int) Composable { return g[i] })

	for i, n := range *entries {
		if !n.reborrow(g[i]) {
			cx.dropNode(n)
			n = cx.mountChild(g[i])
			(*entries)[i] = n
		}
		n.scope.refreshContexts(cx)
		n.scope.parentChanged = cx.parentChanged
		n.drive()
	}
	return nil
}

// resizeEntries grows the positional entry list with freshly mounted nodes
// or tears down and truncates the removed tail.
func resizeEntries(cx *Scope, entries *[]*node, want int, at func(i int) Composable) {
	if want > len(*entries) {
		for i := len(*entries); i < want; i++ {
			*entries = append(*entries, cx.mountChild(at(i)))
		}
		return
	}
	for _, n := range (*entries)[want:] {
		cx.dropNode(n)
	}
	*entries = (*entries)[:want]
}
