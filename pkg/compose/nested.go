package compose

// nodeCell is the hook-slot storage for a combinator's single nested node.
type nodeCell struct {
	n *node
}

// driveNested exchanges content into the cell's node, or mounts it fresh
// when nothing is cached or the structural id differs (running the old
// node's teardown first). The nested scope's context map is refreshed from
// the owner and the given parent-changed flag is copied in before driving.
func driveNested(cx *Scope, cell *nodeCell, content Composable, parentChanged bool) {
	if cell.n == nil || !cell.n.reborrow(content) {
		if cell.n != nil {
			cx.dropNode(cell.n)
		}
		cell.n = cx.mountChild(content)
	}
	cell.n.scope.refreshContexts(cx)
	cell.n.scope.parentChanged = parentChanged
	cell.n.drive()
}
