package compose

import "slices"

// ForEach maps a collection to children, one per item, addressed purely by
// position: reordering items is indistinguishable from replacing tail
// entries. Growing the collection mounts fresh scopes for the extra
// positions; shrinking tears down the removed tail. Every retained
// position is re-driven with the current item value regardless of whether
// that item changed — detecting "this item didn't change" belongs to the
// per-item composable, typically via its own UseMemo against the item.
func ForEach[S ~[]T, T any](items S, makeItem func(item T) Composable) Composable {
	return forEach[T]{items: slices.Clone([]T(items)), makeItem: makeItem}
}

type forEach[T any] struct {
	items    []T
	makeItem func(T) Composable
}

// Compose implements Composable.
func (f forEach[T]) Compose(cx *Scope) Composable {
	cx.container = true
	slot, fresh := cx.nextSlot(hookNodes)
	if fresh {
		slot.value = &[]*node{}
	}
	entries := slot.value.(*[]*node)

	resizeEntries(cx, entries, len(f.items), func(i int) Composable {
		return f.makeItem(f.items[i])
	})

	for i, n := range *entries {
		item := f.makeItem(f.items[i])
		if !n.reborrow(item) {
			cx.dropNode(n)
			n = cx.mountChild(item)
			(*entries)[i] = n
		}
		n.scope.refreshContexts(cx)
		n.scope.parentChanged = cx.parentChanged
		n.drive()
	}
	return nil
}
