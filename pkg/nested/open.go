package nested

import "github.com/loom-ui/loom/pkg/reactive"

// OpenAccess is the view of the tree an open strategy works against: read
// access to the open set and the adjacency maps, plus the raw open-set
// write.
type OpenAccess interface {
	// OpenedIDs returns the currently open IDs (unordered, untracked).
	OpenedIDs() []string

	// AncestorsOf returns the root-first ancestor chain of id.
	AncestorsOf(id string) []string

	// ChildrenOf returns id's immediate children.
	ChildrenOf(id string) []string

	// MarkOpened writes raw open-set membership.
	MarkOpened(on bool, ids ...string)
}

// OpenStrategy decides the side effects of opening and closing one node.
type OpenStrategy interface {
	OnOpen(id string, tree OpenAccess)
	OnClose(id string, tree OpenAccess)
}

// multipleOpenStrategy opens and closes nodes with no side effects.
type multipleOpenStrategy struct{}

func (multipleOpenStrategy) OnOpen(id string, tree OpenAccess) {
	tree.MarkOpened(true, id)
}

func (multipleOpenStrategy) OnClose(id string, tree OpenAccess) {
	tree.MarkOpened(false, id)
}

// singleOpenStrategy keeps one branch open: opening a node closes every
// previously open node outside the node's own ancestor chain.
type singleOpenStrategy struct{}

func (singleOpenStrategy) OnOpen(id string, tree OpenAccess) {
	keep := map[string]struct{}{id: {}}
	for _, a := range tree.AncestorsOf(id) {
		keep[a] = struct{}{}
	}
	for _, open := range tree.OpenedIDs() {
		if _, ok := keep[open]; !ok {
			tree.MarkOpened(false, open)
		}
	}
	tree.MarkOpened(true, id)
}

func (singleOpenStrategy) OnClose(id string, tree OpenAccess) {
	tree.MarkOpened(false, id)
}

// openAccess adapts Nested to the OpenAccess interface.
type openAccess[T any] struct {
	n *Nested[T]
}

func (a openAccess[T]) OpenedIDs() []string {
	open := a.n.opened.Peek()
	ids := make([]string, 0, len(open))
	for id := range open {
		ids = append(ids, id)
	}
	return ids
}

func (a openAccess[T]) AncestorsOf(id string) []string {
	path := a.n.pathPeek(id)
	if len(path) == 0 {
		return nil
	}
	return path[:len(path)-1]
}

func (a openAccess[T]) ChildrenOf(id string) []string {
	return a.n.childrenPeek(id)
}

func (a openAccess[T]) MarkOpened(on bool, ids ...string) {
	a.n.MarkOpened(on, ids...)
}

// MarkOpened writes raw open-set membership, skipping unknown IDs.
func (n *Nested[T]) MarkOpened(on bool, ids ...string) {
	if len(ids) == 0 {
		return
	}
	known := ids[:0:0]
	for _, id := range ids {
		if n.HasPeek(id) {
			known = append(known, id)
		}
	}
	if len(known) == 0 {
		return
	}
	n.opened.Update(func(s map[string]struct{}) map[string]struct{} {
		if on {
			return addAll(s, known)
		}
		return removeAll(s, known)
	})
}

// Opened reports whether id is expanded. Reactive.
func (n *Nested[T]) Opened(id string) bool {
	_, ok := n.opened.Get()[id]
	return ok
}

// OpenedIDs returns the open IDs in registration order. Reactive.
func (n *Nested[T]) OpenedIDs() []string {
	open := n.opened.Get()
	var out []string
	for _, id := range n.Keys() {
		if _, ok := open[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// OpenedItems returns the payloads of the open nodes in registration order.
// Reactive.
func (n *Nested[T]) OpenedItems() []T {
	open := n.opened.Get()
	var out []T
	for _, id := range n.Keys() {
		if _, ok := open[id]; ok {
			if v, ok := n.Value(id); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// Open expands ids through the configured strategy. With WithAutoReveal the
// ancestors of each id are opened as well. Unknown IDs are skipped.
func (n *Nested[T]) Open(ids ...string) {
	reactive.Batch(func() {
		access := openAccess[T]{n: n}
		for _, id := range ids {
			if !n.HasPeek(id) {
				continue
			}
			if n.cfg.autoReveal {
				n.MarkOpened(true, access.AncestorsOf(id)...)
			}
			n.strategy.OnOpen(id, access)
		}
	})
}

// Close collapses ids through the configured strategy.
func (n *Nested[T]) Close(ids ...string) {
	reactive.Batch(func() {
		access := openAccess[T]{n: n}
		for _, id := range ids {
			if !n.HasPeek(id) {
				continue
			}
			n.strategy.OnClose(id, access)
		}
	})
}

// Flip toggles the open state of each id.
func (n *Nested[T]) Flip(ids ...string) {
	reactive.Batch(func() {
		open := n.opened.Peek()
		for _, id := range ids {
			if _, ok := open[id]; ok {
				n.Close(id)
			} else {
				n.Open(id)
			}
		}
	})
}

// Reveal opens every ancestor of each id — not the id itself — making a
// deeply nested node visible without expanding it.
func (n *Nested[T]) Reveal(ids ...string) {
	reactive.Batch(func() {
		for _, id := range ids {
			path := n.pathPeek(id)
			if len(path) > 1 {
				n.MarkOpened(true, path[:len(path)-1]...)
			}
		}
	})
}

// Unfold opens each id and its immediate non-leaf children.
func (n *Nested[T]) Unfold(ids ...string) {
	reactive.Batch(func() {
		for _, id := range ids {
			if !n.HasPeek(id) {
				continue
			}
			n.MarkOpened(true, id)
			for _, child := range n.childrenPeek(id) {
				if !n.isLeafPeek(child) {
					n.MarkOpened(true, child)
				}
			}
		}
	})
}

// Expand opens each id (when it is a branch) and every non-leaf descendant:
// full subtree expansion.
func (n *Nested[T]) Expand(ids ...string) {
	reactive.Batch(func() {
		for _, id := range ids {
			if !n.HasPeek(id) || n.isLeafPeek(id) {
				continue
			}
			n.MarkOpened(true, id)
			for _, d := range n.descendantsPeek(id) {
				if !n.isLeafPeek(d) {
					n.MarkOpened(true, d)
				}
			}
		}
	})
}

// ExpandAll opens every branch node in the tree.
func (n *Nested[T]) ExpandAll() {
	reactive.Batch(func() {
		for _, id := range n.Keys() {
			if !n.isLeafPeek(id) {
				n.MarkOpened(true, id)
			}
		}
	})
}

// CollapseAll closes everything.
func (n *Nested[T]) CollapseAll() {
	n.opened.Set(map[string]struct{}{})
}

func addAll(s map[string]struct{}, ids []string) map[string]struct{} {
	missing := 0
	for _, id := range ids {
		if _, ok := s[id]; !ok {
			missing++
		}
	}
	if missing == 0 {
		return s
	}
	next := make(map[string]struct{}, len(s)+missing)
	for k := range s {
		next[k] = struct{}{}
	}
	for _, id := range ids {
		next[id] = struct{}{}
	}
	return next
}

func removeAll(s map[string]struct{}, ids []string) map[string]struct{} {
	present := 0
	for _, id := range ids {
		if _, ok := s[id]; ok {
			present++
		}
	}
	if present == 0 {
		return s
	}
	next := make(map[string]struct{}, len(s)-present)
	drop := make(map[string]struct{}, present)
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	for k := range s {
		if _, gone := drop[k]; !gone {
			next[k] = struct{}{}
		}
	}
	return next
}
