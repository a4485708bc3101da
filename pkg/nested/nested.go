package nested

import (
	"sync"

	"github.com/loom-ui/loom/pkg/group"
	"github.com/loom-ui/loom/pkg/reactive"
)

// Registration describes one node to add to the tree, optionally with an
// inline subtree.
type Registration[T any] struct {
	// ID identifies the node. When empty, a random ID is generated.
	ID string

	// Value is the opaque payload.
	Value T

	// Disabled excludes the node from SelectAll/ToggleAll and mandatory
	// auto-selection.
	Disabled bool

	// ParentID attaches the node under an already-registered parent.
	// Empty means root. An unknown parent logs a warning and the node is
	// registered as a root.
	ParentID string

	// Children are registered recursively with this node as parent.
	Children []Registration[T]
}

// Nested is the tree composable: a Group plus parent/child adjacency, open
// state, and tree-aware selection. Construct with New.
type Nested[T any] struct {
	*group.Group[T]

	cfg config

	mu sync.Mutex
	// parents maps child ID to parent ID; a registered ID absent from the
	// map is a root. children maps parent ID to ordered child IDs. Both
	// only ever reference registered IDs.
	parents  map[string]string
	children map[string][]string

	// batching redirects adjacency writes into the scratch maps during
	// Onboard; commitBatch merges them in one pass.
	batching        bool
	scratchParents  map[string]string
	scratchChildren map[string][]string

	opened *reactive.Signal[map[string]struct{}]

	strategy OpenStrategy

	roots  *reactive.Memo[[]string]
	leaves *reactive.Memo[[]string]
}

// New creates a nested tree. Trees are always multi-select at the registry
// level; cardinality semantics come from the selection mode.
func New[T any](opts ...Option) *Nested[T] {
	cfg := defaultNestedConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	n := &Nested[T]{
		Group: group.New[T](
			group.WithMultiple(),
			group.WithMandatory(cfg.mandatory),
			group.WithActiveMode(cfg.active),
			group.WithLogger(cfg.logger),
			group.WithRecorder(cfg.recorder),
		),
		cfg:      cfg,
		parents:  make(map[string]string),
		children: make(map[string][]string),
		opened:   reactive.NewSignal(map[string]struct{}{}),
	}

	n.strategy = cfg.strategy
	if n.strategy == nil {
		switch cfg.openMode {
		case OpenSingle:
			n.strategy = singleOpenStrategy{}
		default:
			n.strategy = multipleOpenStrategy{}
		}
	}

	n.SetSelector(&treeSelector[T]{n: n, mode: cfg.selection})

	n.roots = reactive.NewMemo(func() []string {
		keys := n.Keys()
		n.mu.Lock()
		defer n.mu.Unlock()
		roots := make([]string, 0, len(keys))
		for _, id := range keys {
			if _, ok := n.parents[id]; !ok {
				roots = append(roots, id)
			}
		}
		return roots
	})
	n.leaves = reactive.NewMemo(func() []string {
		keys := n.Keys()
		n.mu.Lock()
		defer n.mu.Unlock()
		leaves := make([]string, 0, len(keys))
		for _, id := range keys {
			if len(n.children[id]) == 0 {
				leaves = append(leaves, id)
			}
		}
		return leaves
	})

	return n
}

// Register adds a node (and any inline children, recursively) and returns
// its ticket.
func (n *Nested[T]) Register(r Registration[T]) *group.Ticket[T] {
	var ticket *group.Ticket[T]
	reactive.Batch(func() {
		ticket = n.register(r)
	})
	return ticket
}

func (n *Nested[T]) register(r Registration[T]) *group.Ticket[T] {
	parentID := r.ParentID
	if parentID != "" && !n.HasPeek(parentID) {
		n.cfg.logger.Warn("nested: unknown parent, registering as root",
			"id", r.ID, "parent", parentID)
		parentID = ""
	}

	duplicate := r.ID != "" && n.HasPeek(r.ID)
	ticket := n.Group.Register(group.Registration[T]{
		ID:       r.ID,
		Value:    r.Value,
		Disabled: r.Disabled,
	})
	if duplicate {
		// The registry kept the existing record; leave adjacency alone.
		return ticket
	}
	id := ticket.Key()

	n.mu.Lock()
	if parentID != "" {
		if n.batching {
			n.scratchParents[id] = parentID
			n.scratchChildren[parentID] = append(n.scratchChildren[parentID], id)
		} else {
			n.parents[id] = parentID
			n.children[parentID] = append(n.children[parentID], id)
		}
	}
	n.mu.Unlock()

	if n.cfg.openAll && parentID != "" {
		n.MarkOpened(true, parentID)
	}

	for _, child := range r.Children {
		child.ParentID = id
		n.register(child)
	}

	return ticket
}

// Unregister removes a node, orphaning its children: they are promoted to
// roots and their open/active state is cleared so no stale subscriptions
// leak. Deeper descendants keep their links. No-op for an unknown ID.
func (n *Nested[T]) Unregister(id string) {
	if !n.HasPeek(id) {
		return
	}
	reactive.Batch(func() {
		n.detach(id)

		n.mu.Lock()
		orphans := n.children[id]
		delete(n.children, id)
		for _, child := range orphans {
			delete(n.parents, child)
		}
		n.mu.Unlock()

		n.MarkOpened(false, id)
		n.MarkOpened(false, orphans...)
		n.Deactivate(orphans...)

		n.Group.Unregister(id)
	})
}

// UnregisterCascade removes a node and its entire subtree.
func (n *Nested[T]) UnregisterCascade(id string) {
	if !n.HasPeek(id) {
		return
	}
	reactive.Batch(func() {
		doomed := append([]string{id}, n.Descendants(id)...)
		n.detach(id)

		n.mu.Lock()
		for _, d := range doomed {
			delete(n.parents, d)
			delete(n.children, d)
		}
		n.mu.Unlock()

		n.MarkOpened(false, doomed...)
		for _, d := range doomed {
			n.Group.Unregister(d)
		}
	})
}

// Offboard unregisters many nodes with orphan semantics.
func (n *Nested[T]) Offboard(ids ...string) {
	reactive.Batch(func() {
		for _, id := range ids {
			n.Unregister(id)
		}
	})
}

// OffboardCascade unregisters many subtrees.
func (n *Nested[T]) OffboardCascade(ids ...string) {
	reactive.Batch(func() {
		for _, id := range ids {
			n.UnregisterCascade(id)
		}
	})
}

// detach removes id from its parent's child list and from parents.
func (n *Nested[T]) detach(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	parent, ok := n.parents[id]
	if !ok {
		return
	}
	delete(n.parents, id)
	siblings := n.children[parent]
	for i, sid := range siblings {
		if sid == id {
			n.children[parent] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if len(n.children[parent]) == 0 {
		delete(n.children, parent)
	}
}

// Clear unregisters everything: registry, adjacency, and open state.
func (n *Nested[T]) Clear() {
	reactive.Batch(func() {
		n.mu.Lock()
		n.parents = make(map[string]string)
		n.children = make(map[string][]string)
		n.mu.Unlock()

		n.opened.Set(map[string]struct{}{})
		n.Group.Clear()
	})
}

// Reset keeps the tree but clears selection, mixed, open, and active state.
func (n *Nested[T]) Reset() {
	reactive.Batch(func() {
		n.opened.Set(map[string]struct{}{})
		n.Group.Reset()
	})
}

// Parent returns id's parent. ok is false for roots and unknown IDs.
func (n *Nested[T]) Parent(id string) (string, bool) {
	n.Rev()
	n.mu.Lock()
	defer n.mu.Unlock()
	p, ok := n.parents[id]
	return p, ok
}

// Children returns id's immediate children in registration order.
func (n *Nested[T]) Children(id string) []string {
	n.Rev()
	n.mu.Lock()
	defer n.mu.Unlock()
	kids := make([]string, len(n.children[id]))
	copy(kids, n.children[id])
	return kids
}

// parentPeek reads the parent link without subscribing.
func (n *Nested[T]) parentPeek(id string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	p, ok := n.parents[id]
	return p, ok
}

// childrenPeek reads a child list without subscribing or copying. Callers
// must not retain the slice across mutations.
func (n *Nested[T]) childrenPeek(id string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.children[id]
}
