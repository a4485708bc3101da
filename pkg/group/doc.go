// Package group implements the flat selection-group composable: a reactive
// registry of items with unique string IDs, single/multiple selection
// cardinality, mandatory-selection policies, and an independent active
// (highlight) set.
//
// Items are added with Register, which returns a Ticket bundling the item's
// reactive state (IsSelected, IsMixed, Disabled) with bound action closures.
// Rendering code consumes tickets and must Unregister on teardown.
//
// All operations are total over the ID space: acting on an unknown ID is a
// silent no-op, never an error. This keeps UI races (an unmount racing a
// pending toggle) harmless.
//
// Package nested builds the hierarchical tree composable on top of this
// registry.
package group
