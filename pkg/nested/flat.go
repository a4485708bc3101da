package nested

// FlatItem is one node in the flat export of a tree: the id, its parent (or
// empty for roots), and the payload.
type FlatItem[T any] struct {
	ID       string `json:"id" yaml:"id"`
	ParentID string `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Value    T      `json:"value" yaml:"value"`
}

// ToFlat exports the tree as flat parent-linked records in registration
// order, for transmission to external systems. Reactive.
func (n *Nested[T]) ToFlat() []FlatItem[T] {
	keys := n.Keys()
	items := make([]FlatItem[T], 0, len(keys))
	for _, id := range keys {
		parent, _ := n.Parent(id)
		value, _ := n.Value(id)
		items = append(items, FlatItem[T]{
			ID:       id,
			ParentID: parent,
			Value:    value,
		})
	}
	return items
}

// FromFlat registers flat records into the tree via Onboard. Records must be
// ordered parents-before-children (ToFlat output satisfies this); a record
// whose parent has not been seen registers as a root with a warning.
func (n *Nested[T]) FromFlat(items []FlatItem[T]) {
	regs := make([]Registration[T], 0, len(items))
	for _, it := range items {
		regs = append(regs, Registration[T]{
			ID:       it.ID,
			Value:    it.Value,
			ParentID: it.ParentID,
		})
	}
	n.Onboard(regs)
}
