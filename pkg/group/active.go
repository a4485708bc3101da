package group

import "github.com/loom-ui/loom/pkg/reactive"

// Activate marks ids active. Under ActiveSingle the set is replaced, so the
// last known id wins; under ActiveMultiple ids are added. Unknown ids are
// skipped.
func (g *Group[T]) Activate(ids ...string) {
	known := g.known(ids)
	if len(known) == 0 {
		return
	}
	reactive.Batch(func() {
		if g.cfg.active == ActiveSingle {
			last := known[len(known)-1]
			g.active.Set(idSet{last: {}})
		} else {
			g.active.Update(func(s idSet) idSet { return setAdd(s, known...) })
		}
	})
}

// Deactivate removes ids from the active set.
func (g *Group[T]) Deactivate(ids ...string) {
	g.active.Update(func(s idSet) idSet { return setRemove(s, ids...) })
}

// DeactivateAll empties the active set.
func (g *Group[T]) DeactivateAll() {
	g.active.Set(idSet{})
}

// Activated reports whether id is active. Reactive.
func (g *Group[T]) Activated(id string) bool {
	return setHas(g.active.Get(), id)
}

// ActiveIDs returns the active IDs in registration order. Reactive.
func (g *Group[T]) ActiveIDs() []string {
	return g.inOrder(g.active.Get())
}

// ActiveValues returns the payloads of the active items in registration
// order. Reactive.
func (g *Group[T]) ActiveValues() []T {
	act := g.active.Get()
	g.rev.Get()
	g.mu.Lock()
	defer g.mu.Unlock()
	values := make([]T, 0, len(act))
	for _, id := range g.order {
		if setHas(act, id) {
			values = append(values, g.items[id].value)
		}
	}
	return values
}

// ActiveIndexes returns the registration-order indexes of the active items,
// ascending. Reactive.
func (g *Group[T]) ActiveIndexes() []int {
	act := g.active.Get()
	g.rev.Get()
	g.mu.Lock()
	defer g.mu.Unlock()
	indexes := make([]int, 0, len(act))
	for i, id := range g.order {
		if setHas(act, id) {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
