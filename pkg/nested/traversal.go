package nested

// Path returns the IDs from the root down to id, inclusive. Unknown IDs
// yield nil.
func (n *Nested[T]) Path(id string) []string {
	n.Rev()
	return n.pathPeek(id)
}

// pathPeek is Path without dependency tracking, for mutation paths.
func (n *Nested[T]) pathPeek(id string) []string {
	if !n.HasPeek(id) {
		return nil
	}
	path := []string{id}
	cur := id
	for {
		parent, ok := n.parentPeek(cur)
		if !ok {
			break
		}
		path = append(path, parent)
		cur = parent
	}
	// Built leaf-first; reverse to root-first.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Ancestors returns the IDs from the root down to id's parent. Empty for
// roots and unknown IDs.
func (n *Nested[T]) Ancestors(id string) []string {
	path := n.Path(id)
	if len(path) == 0 {
		return nil
	}
	return path[:len(path)-1]
}

// Descendants returns every ID reachable below id, in BFS order.
func (n *Nested[T]) Descendants(id string) []string {
	n.Rev()
	return n.descendantsPeek(id)
}

// descendantsPeek is Descendants without dependency tracking.
func (n *Nested[T]) descendantsPeek(id string) []string {
	var out []string
	queue := append([]string(nil), n.childrenPeek(id)...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		queue = append(queue, n.childrenPeek(cur)...)
	}
	return out
}

// IsLeaf reports whether id has no children. True for unknown IDs.
func (n *Nested[T]) IsLeaf(id string) bool {
	n.Rev()
	return n.isLeafPeek(id)
}

func (n *Nested[T]) isLeafPeek(id string) bool {
	return len(n.childrenPeek(id)) == 0
}

// Depth returns the number of ancestors above id; roots have depth 0.
// Unknown IDs have depth 0 as well.
func (n *Nested[T]) Depth(id string) int {
	return len(n.Ancestors(id))
}

// IsAncestorOf reports whether ancestor lies strictly above id. False when
// either ID is unregistered or the two are equal.
func (n *Nested[T]) IsAncestorOf(ancestor, id string) bool {
	n.Rev()
	if ancestor == id || !n.HasPeek(ancestor) || !n.HasPeek(id) {
		return false
	}
	cur := id
	for {
		parent, ok := n.parentPeek(cur)
		if !ok {
			return false
		}
		if parent == ancestor {
			return true
		}
		cur = parent
	}
}

// HasAncestor reports whether ancestor lies strictly above id; the mirrored
// form of IsAncestorOf.
func (n *Nested[T]) HasAncestor(id, ancestor string) bool {
	return n.IsAncestorOf(ancestor, id)
}

// Siblings returns the child list id belongs to: its parent's children, or
// the root set (including id itself) when id is a root.
func (n *Nested[T]) Siblings(id string) []string {
	if parent, ok := n.Parent(id); ok {
		return n.Children(parent)
	}
	return n.Roots()
}

// Position returns id's 1-indexed position among its siblings, or 0 when id
// is not found.
func (n *Nested[T]) Position(id string) int {
	for i, sid := range n.Siblings(id) {
		if sid == id {
			return i + 1
		}
	}
	return 0
}

// Roots returns every registered ID with no parent, in registration order.
// Memoized; reactive.
func (n *Nested[T]) Roots() []string {
	return n.roots.Get()
}

// Leaves returns every registered ID with no children, in registration
// order. Memoized; reactive.
func (n *Nested[T]) Leaves() []string {
	return n.leaves.Get()
}

// leafDescendantsPeek returns the leaves of id's subtree; for a leaf id it
// returns id itself.
func (n *Nested[T]) leafDescendantsPeek(id string) []string {
	if n.isLeafPeek(id) {
		return []string{id}
	}
	var out []string
	for _, d := range n.descendantsPeek(id) {
		if n.isLeafPeek(d) {
			out = append(out, d)
		}
	}
	return out
}
