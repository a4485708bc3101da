package group

import (
	"sync"

	"github.com/google/uuid"

	"github.com/loom-ui/loom/pkg/reactive"
)

// Registration describes one item to add to a group.
type Registration[T any] struct {
	// ID identifies the item within the group. When empty, a random ID is
	// generated.
	ID string

	// Value is the opaque payload reported for value-based selection.
	Value T

	// Disabled excludes the item from SelectAll/ToggleAll and from
	// mandatory auto-selection. Explicit API calls still affect it.
	Disabled bool
}

// item is the registry record for one registered entity. A single owning
// group holds it for its entire lifetime.
type item[T any] struct {
	id       string
	value    T
	disabled *reactive.Signal[bool]
}

// Group is a reactive registry of items with selection and active state.
// Construct with New; the zero value is not usable.
type Group[T any] struct {
	cfg config

	mu    sync.Mutex
	items map[string]*item[T]
	// order is the registration order of live IDs.
	order []string
	// indexCache maps id to ordinal; rebuilt lazily after mutation.
	indexCache map[string]int

	// rev is bumped on every structural mutation so memoized views over
	// the registry invalidate.
	rev *reactive.Signal[uint64]

	selected *reactive.Signal[idSet]
	mixed    *reactive.Signal[idSet]
	active   *reactive.Signal[idSet]

	selector Selector
}

// Selector is the selection strategy a group routes Select/Unselect/Toggle
// through. The default flat strategy enforces cardinality and the mandatory
// policy; package nested installs tree-aware strategies.
type Selector interface {
	Select(ids []string)
	Unselect(ids []string)
	Toggle(ids []string)
}

// New creates a group with the given options.
func New[T any](opts ...Option) *Group[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Group[T]{
		cfg:      cfg,
		items:    make(map[string]*item[T]),
		rev:      reactive.NewSignal(uint64(0)),
		selected: newSetSignal(),
		mixed:    newSetSignal(),
		active:   newSetSignal(),
	}
	g.selector = &flatSelector[T]{g: g}
	return g
}

// SetSelector installs a custom selection strategy. Intended for composables
// layered on the registry (package nested); rendering code has no reason to
// call it.
func (g *Group[T]) SetSelector(s Selector) {
	if s != nil {
		g.selector = s
	}
}

// Register adds an item and returns its ticket.
//
// A duplicate caller-supplied ID does not overwrite: the existing record is
// kept, a warning is logged, and the returned ticket is bound to the
// existing record.
//
// Under MandatoryForce, registering into an empty selection auto-selects the
// new item unless it is disabled.
func (g *Group[T]) Register(r Registration[T]) *Ticket[T] {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}

	g.mu.Lock()
	if _, exists := g.items[id]; exists {
		g.mu.Unlock()
		g.cfg.logger.Warn("group: duplicate id, keeping existing registration", "id", id)
		return &Ticket[T]{id: id, g: g}
	}
	g.items[id] = &item[T]{
		id:       id,
		value:    r.Value,
		disabled: reactive.NewSignal(r.Disabled),
	}
	g.order = append(g.order, id)
	g.indexCache = nil
	size := len(g.items)
	g.mu.Unlock()

	g.bumpRev()

	if g.cfg.mandatory == MandatoryForce && !r.Disabled && g.selectedCount() == 0 {
		g.selector.Select([]string{id})
	}

	g.cfg.recorder.RecordRegister(1)
	g.cfg.recorder.RecordSize(size)
	return &Ticket[T]{id: id, g: g}
}

// Unregister removes an item and its selection/mixed/active membership.
// No-op for an unknown ID. Under MandatoryForce, removing the last selected
// item reselects another item when one exists.
func (g *Group[T]) Unregister(id string) {
	g.mu.Lock()
	if _, ok := g.items[id]; !ok {
		g.mu.Unlock()
		return
	}
	delete(g.items, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	g.indexCache = nil
	size := len(g.items)
	g.mu.Unlock()

	wasSelected := setHas(g.selected.Peek(), id)

	reactive.Batch(func() {
		g.selected.Update(func(s idSet) idSet { return setRemove(s, id) })
		g.mixed.Update(func(s idSet) idSet { return setRemove(s, id) })
		g.active.Update(func(s idSet) idSet { return setRemove(s, id) })
		g.bumpRev()
	})

	if g.cfg.mandatory == MandatoryForce && wasSelected && g.selectedCount() == 0 {
		if next, ok := g.firstSelectable(); ok {
			g.selector.Select([]string{next})
		}
	}

	g.cfg.recorder.RecordUnregister(1)
	g.cfg.recorder.RecordSize(size)
}

// Has reports whether id is registered. Reactive.
func (g *Group[T]) Has(id string) bool {
	g.rev.Get()
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.items[id]
	return ok
}

// Get returns the ticket for a registered id.
func (g *Group[T]) Get(id string) (*Ticket[T], bool) {
	g.rev.Get()
	g.mu.Lock()
	_, ok := g.items[id]
	g.mu.Unlock()
	if !ok {
		return nil, false
	}
	return &Ticket[T]{id: id, g: g}, true
}

// Value returns the payload registered under id.
func (g *Group[T]) Value(id string) (T, bool) {
	g.rev.Get()
	g.mu.Lock()
	defer g.mu.Unlock()
	if it, ok := g.items[id]; ok {
		return it.value, true
	}
	var zero T
	return zero, false
}

// Keys returns all registered IDs in registration order. Reactive.
func (g *Group[T]) Keys() []string {
	g.rev.Get()
	g.mu.Lock()
	defer g.mu.Unlock()
	keys := make([]string, len(g.order))
	copy(keys, g.order)
	return keys
}

// Values returns all payloads in registration order. Reactive.
func (g *Group[T]) Values() []T {
	g.rev.Get()
	g.mu.Lock()
	defer g.mu.Unlock()
	values := make([]T, 0, len(g.order))
	for _, id := range g.order {
		values = append(values, g.items[id].value)
	}
	return values
}

// Size returns the number of registered items. Reactive.
func (g *Group[T]) Size() int {
	g.rev.Get()
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}

// IndexOf returns the item's ordinal position in registration order, or -1
// for an unknown id. Indexes are recomputed lazily after mutation.
func (g *Group[T]) IndexOf(id string) int {
	g.rev.Get()
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.indexCache == nil {
		g.indexCache = make(map[string]int, len(g.order))
		for i, oid := range g.order {
			g.indexCache[oid] = i
		}
	}
	if i, ok := g.indexCache[id]; ok {
		return i
	}
	return -1
}

// Select selects ids per the installed strategy. Unknown ids are skipped.
func (g *Group[T]) Select(ids ...string) {
	reactive.Batch(func() {
		g.selector.Select(ids)
	})
	g.cfg.recorder.RecordSelection("select")
}

// Unselect unselects ids per the installed strategy.
func (g *Group[T]) Unselect(ids ...string) {
	reactive.Batch(func() {
		g.selector.Unselect(ids)
	})
	g.cfg.recorder.RecordSelection("unselect")
}

// Toggle toggles ids per the installed strategy.
func (g *Group[T]) Toggle(ids ...string) {
	reactive.Batch(func() {
		g.selector.Toggle(ids)
	})
	g.cfg.recorder.RecordSelection("toggle")
}

// SelectAll selects every non-disabled item. Only meaningful with
// WithMultiple; in single mode it is a no-op.
func (g *Group[T]) SelectAll() {
	if !g.cfg.multiple {
		return
	}
	reactive.Batch(func() {
		g.selector.Select(g.selectableIDs())
	})
	g.cfg.recorder.RecordSelection("select_all")
}

// UnselectAll unselects every non-disabled item. The mandatory policy still
// applies: the last selected item survives under MandatoryOn/Force.
func (g *Group[T]) UnselectAll() {
	reactive.Batch(func() {
		g.selector.Unselect(g.selectableIDs())
	})
	g.cfg.recorder.RecordSelection("unselect_all")
}

// ToggleAll selects all non-disabled items unless all are already selected,
// in which case it unselects them.
func (g *Group[T]) ToggleAll() {
	ids := g.selectableIDs()
	all := true
	sel := g.selected.Peek()
	for _, id := range ids {
		if !setHas(sel, id) {
			all = false
			break
		}
	}
	reactive.Batch(func() {
		if all {
			g.selector.Unselect(ids)
		} else {
			g.selector.Select(ids)
		}
	})
	g.cfg.recorder.RecordSelection("toggle_all")
}

// Selected reports whether id is selected. Reactive.
func (g *Group[T]) Selected(id string) bool {
	return setHas(g.selected.Get(), id)
}

// Mixed reports whether id is in the mixed (indeterminate) state. Reactive.
func (g *Group[T]) Mixed(id string) bool {
	return setHas(g.mixed.Get(), id)
}

// SelectedIDs returns the selected IDs in registration order. Reactive.
func (g *Group[T]) SelectedIDs() []string {
	sel := g.selected.Get()
	return g.inOrder(sel)
}

// MixedIDs returns the mixed IDs in registration order. Reactive.
func (g *Group[T]) MixedIDs() []string {
	return g.inOrder(g.mixed.Get())
}

// SelectedValues returns the payloads of the selected items in registration
// order. Reactive.
func (g *Group[T]) SelectedValues() []T {
	sel := g.selected.Get()
	g.rev.Get()
	g.mu.Lock()
	defer g.mu.Unlock()
	values := make([]T, 0, len(sel))
	for _, id := range g.order {
		if setHas(sel, id) {
			values = append(values, g.items[id].value)
		}
	}
	return values
}

// Clear unregisters everything and empties all state sets.
func (g *Group[T]) Clear() {
	g.mu.Lock()
	n := len(g.items)
	g.items = make(map[string]*item[T])
	g.order = nil
	g.indexCache = nil
	g.mu.Unlock()

	reactive.Batch(func() {
		g.selected.Set(idSet{})
		g.mixed.Set(idSet{})
		g.active.Set(idSet{})
		g.bumpRev()
	})

	g.cfg.recorder.RecordUnregister(n)
	g.cfg.recorder.RecordSize(0)
}

// Reset keeps the registered items but clears selection, mixed, and active
// state. Under MandatoryForce the first selectable item is reselected.
func (g *Group[T]) Reset() {
	reactive.Batch(func() {
		g.selected.Set(idSet{})
		g.mixed.Set(idSet{})
		g.active.Set(idSet{})
	})

	if g.cfg.mandatory == MandatoryForce {
		if next, ok := g.firstSelectable(); ok {
			g.selector.Select([]string{next})
		}
	}
}

// MarkSelected writes raw selected-set membership, bypassing the selection
// strategy and the mandatory policy. Selecting clears the mixed flag so the
// sets stay disjoint. Unknown ids are skipped. Strategy implementations
// build on this; rendering code should use Select/Unselect.
func (g *Group[T]) MarkSelected(on bool, ids ...string) {
	known := g.known(ids)
	if len(known) == 0 {
		return
	}
	if on {
		g.mixed.Update(func(s idSet) idSet { return setRemove(s, known...) })
		g.selected.Update(func(s idSet) idSet { return setAdd(s, known...) })
	} else {
		g.selected.Update(func(s idSet) idSet { return setRemove(s, known...) })
	}
}

// MarkMixed writes raw mixed-set membership; marking mixed clears the
// selected flag. Unknown ids are skipped.
func (g *Group[T]) MarkMixed(on bool, ids ...string) {
	known := g.known(ids)
	if len(known) == 0 {
		return
	}
	if on {
		g.selected.Update(func(s idSet) idSet { return setRemove(s, known...) })
		g.mixed.Update(func(s idSet) idSet { return setAdd(s, known...) })
	} else {
		g.mixed.Update(func(s idSet) idSet { return setRemove(s, known...) })
	}
}

// ReplaceSelection replaces the whole selected set, used by single-select
// strategies. Unknown ids are dropped.
func (g *Group[T]) ReplaceSelection(ids ...string) {
	known := g.known(ids)
	next := make(idSet, len(known))
	for _, id := range known {
		next[id] = struct{}{}
	}
	g.mixed.Update(func(s idSet) idSet { return setRemove(s, known...) })
	g.selected.Set(next)
}

// Multiple reports whether the group allows multi-selection.
func (g *Group[T]) Multiple() bool {
	return g.cfg.multiple
}

// MandatoryPolicy returns the configured mandatory policy.
func (g *Group[T]) MandatoryPolicy() Mandatory {
	return g.cfg.mandatory
}

// bumpRev invalidates memoized structural views.
func (g *Group[T]) bumpRev() {
	g.rev.Update(func(v uint64) uint64 { return v + 1 })
}

// Rev exposes a tracked read of the structural revision, for composables
// that memoize derived views of the registry.
func (g *Group[T]) Rev() uint64 {
	return g.rev.Get()
}

// selectedCount returns the selected-set size without subscribing.
func (g *Group[T]) selectedCount() int {
	return len(g.selected.Peek())
}

// SelectedPeek returns selected membership without subscribing. For use in
// mutation paths, which must not create dependencies.
func (g *Group[T]) SelectedPeek(id string) bool {
	return setHas(g.selected.Peek(), id)
}

// MixedPeek returns mixed membership without subscribing.
func (g *Group[T]) MixedPeek(id string) bool {
	return setHas(g.mixed.Peek(), id)
}

// HasPeek reports registration without subscribing.
func (g *Group[T]) HasPeek(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.items[id]
	return ok
}

// SelectedCountPeek returns the selected-set size without subscribing.
func (g *Group[T]) SelectedCountPeek() int {
	return g.selectedCount()
}

// SelectedIDsPeek returns the selected IDs without subscribing. Order is
// unspecified; for ordered output use SelectedIDs.
func (g *Group[T]) SelectedIDsPeek() []string {
	sel := g.selected.Peek()
	ids := make([]string, 0, len(sel))
	for id := range sel {
		ids = append(ids, id)
	}
	return ids
}

// known filters ids down to those currently registered, preserving order.
func (g *Group[T]) known(ids []string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	known := ids[:0:0]
	for _, id := range ids {
		if _, ok := g.items[id]; ok {
			known = append(known, id)
		}
	}
	return known
}

// selectableIDs returns every non-disabled registered id in order.
func (g *Group[T]) selectableIDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := make([]string, 0, len(g.order))
	for _, id := range g.order {
		if !g.items[id].disabled.Peek() {
			ids = append(ids, id)
		}
	}
	return ids
}

// firstSelectable returns the first non-disabled id in registration order.
func (g *Group[T]) firstSelectable() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range g.order {
		if !g.items[id].disabled.Peek() {
			return id, true
		}
	}
	return "", false
}

// inOrder filters the registration order down to members of s.
func (g *Group[T]) inOrder(s idSet) []string {
	g.rev.Get()
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := make([]string, 0, len(s))
	for _, id := range g.order {
		if setHas(s, id) {
			ids = append(ids, id)
		}
	}
	return ids
}
