package group

import "github.com/loom-ui/loom/pkg/reactive"

// Ticket is the handle returned by Register: the item's reactive state plus
// action closures bound to its ID. Tickets are cheap ID-bound views; holding
// one does not keep the item alive, and every method is a silent no-op (or
// zero read) once the item is unregistered.
type Ticket[T any] struct {
	id string
	g  *Group[T]
}

// Key returns the item's ID.
func (t *Ticket[T]) Key() string {
	return t.id
}

// Value returns the item's payload. Zero value after unregistration.
func (t *Ticket[T]) Value() T {
	v, _ := t.g.Value(t.id)
	return v
}

// IsSelected reports the item's selected state. Reactive.
func (t *Ticket[T]) IsSelected() bool {
	return t.g.Selected(t.id)
}

// IsMixed reports the item's mixed (indeterminate) state. Reactive.
func (t *Ticket[T]) IsMixed() bool {
	return t.g.Mixed(t.id)
}

// Disabled reports the item's disabled state. Reactive. False after
// unregistration.
func (t *Ticket[T]) Disabled() bool {
	return t.disabledSignal() != nil && t.disabledSignal().Get()
}

// SetDisabled updates the item's disabled state.
func (t *Ticket[T]) SetDisabled(disabled bool) {
	if sig := t.disabledSignal(); sig != nil {
		sig.Set(disabled)
	}
}

// Index returns the item's ordinal in registration order, -1 when
// unregistered.
func (t *Ticket[T]) Index() int {
	return t.g.IndexOf(t.id)
}

// Select selects the item through the group's strategy.
func (t *Ticket[T]) Select() {
	t.g.Select(t.id)
}

// Unselect unselects the item through the group's strategy.
func (t *Ticket[T]) Unselect() {
	t.g.Unselect(t.id)
}

// Toggle toggles the item through the group's strategy.
func (t *Ticket[T]) Toggle() {
	t.g.Toggle(t.id)
}

// Mix sets the raw mixed flag, clearing selected.
func (t *Ticket[T]) Mix() {
	t.g.MarkMixed(true, t.id)
}

// Unmix clears the raw mixed flag.
func (t *Ticket[T]) Unmix() {
	t.g.MarkMixed(false, t.id)
}

func (t *Ticket[T]) disabledSignal() *reactive.Signal[bool] {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	if it, ok := t.g.items[t.id]; ok {
		return it.disabled
	}
	return nil
}
