// Package nested implements the hierarchical tree composable: a selection
// group (package group) extended with parent/child adjacency, traversal,
// tri-state cascading selection, expand/collapse state with pluggable open
// strategies, and batch onboarding.
//
// The tree owns two adjacency maps keyed by item ID. Parent/child links are
// plain ID associations, never object pointers, so the only hazard is
// logical inconsistency — which the API prevents: every mutation leaves the
// maps consistent with the registry before it returns.
//
//	tree := nested.New[string](nested.WithSelection(nested.SelectCascade))
//	tree.Register(nested.Registration[string]{ID: "docs", Children: []nested.Registration[string]{
//	    {ID: "intro"},
//	    {ID: "guide"},
//	}})
//	tree.Select("docs")       // cascades to intro and guide
//	tree.Mixed("docs")        // false: all children selected
//
// Unregistering a branch either orphans its children (promotes them to
// roots) or, with the cascade variant, removes the whole subtree.
package nested
