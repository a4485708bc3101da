package nested

import (
	"testing"

	"github.com/loom-ui/loom/pkg/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cascadeTree builds:
//
//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	└── b
func cascadeTree(opts ...Option) *Nested[int] {
	n := New[int](opts...)
	n.Register(Registration[int]{ID: "root", Children: []Registration[int]{
		{ID: "a", Children: []Registration[int]{{ID: "a1"}, {ID: "a2"}}},
		{ID: "b"},
	}})
	return n
}

func TestCascadeSelectPropagatesDown(t *testing.T) {
	n := cascadeTree()

	n.Select("a")

	assert.True(t, n.Selected("a"))
	assert.True(t, n.Selected("a1"))
	assert.True(t, n.Selected("a2"))
	assert.False(t, n.Selected("b"))
}

func TestCascadeMixedPropagatesUp(t *testing.T) {
	n := cascadeTree()

	n.Select("a1")

	assert.True(t, n.Selected("a1"))
	assert.True(t, n.Mixed("a"), "some but not all children selected")
	assert.False(t, n.Selected("a"))
	assert.True(t, n.Mixed("root"))

	n.Select("a2")
	assert.True(t, n.Selected("a"), "all children selected promotes the parent")
	assert.False(t, n.Mixed("a"))
	assert.True(t, n.Mixed("root"), "b is still unselected")

	n.Select("b")
	assert.True(t, n.Selected("root"))
	assert.False(t, n.Mixed("root"))
}

func TestCascadeUnselectRecomputesAncestors(t *testing.T) {
	n := cascadeTree()
	n.Select("root")
	require.True(t, n.Selected("root"))

	n.Unselect("a1")

	assert.False(t, n.Selected("a1"))
	assert.True(t, n.Mixed("a"))
	assert.False(t, n.Selected("a"))
	assert.True(t, n.Mixed("root"))

	n.Unselect("a2")
	n.Unselect("b")
	assert.False(t, n.Mixed("root"), "nothing selected leaves root neither selected nor mixed")
	assert.False(t, n.Selected("root"))
}

func TestCascadeFullUnselectClearsEverything(t *testing.T) {
	n := cascadeTree()
	n.Select("root")

	n.Unselect("root")

	for _, id := range n.Keys() {
		assert.False(t, n.Selected(id), "%s should be unselected", id)
		assert.False(t, n.Mixed(id), "%s should not be mixed", id)
	}
}

func TestCascadeToggle(t *testing.T) {
	n := cascadeTree()

	n.Select("a1")
	require.True(t, n.Mixed("a"))

	// A mixed node toggles to unselected.
	n.Toggle("a")
	assert.False(t, n.Selected("a1"))
	assert.False(t, n.Mixed("a"))

	n.Toggle("a")
	assert.True(t, n.Selected("a"))
	assert.True(t, n.Selected("a1"))
	assert.True(t, n.Selected("a2"))
}

func TestCascadeIdempotent(t *testing.T) {
	n := cascadeTree()

	n.Select("a")
	before := n.SelectedIDs()
	n.Select("a")
	assert.Equal(t, before, n.SelectedIDs())

	n.Toggle("b")
	n.Toggle("b")
	assert.Equal(t, before, n.SelectedIDs())
}

func TestCascadeConsistencyInvariant(t *testing.T) {
	n := cascadeTree()

	ops := []func(){
		func() { n.Select("a1") },
		func() { n.Select("b") },
		func() { n.Unselect("a1") },
		func() { n.Select("root") },
		func() { n.Unselect("a2") },
		func() { n.Toggle("a") },
	}
	for i, op := range ops {
		op()
		for _, id := range n.Keys() {
			if n.IsLeaf(id) {
				assert.False(t, n.Mixed(id), "op %d: leaf %s must never be mixed", i, id)
				continue
			}
			desc := n.Descendants(id)
			all, some := true, false
			for _, d := range desc {
				if n.Selected(d) {
					some = true
				} else {
					all = false
				}
			}
			assert.Equal(t, all, n.Selected(id), "op %d: selected(%s)", i, id)
			assert.Equal(t, some && !all, n.Mixed(id), "op %d: mixed(%s)", i, id)
		}
	}
}

func TestCascadeSelectLeafNodeActsLikePlainSelect(t *testing.T) {
	n := cascadeTree()

	n.Select("b")
	assert.True(t, n.Selected("b"))
	assert.True(t, n.Mixed("root"))
}

func TestIndependentMode(t *testing.T) {
	n := cascadeTree(WithSelection(SelectIndependent))

	n.Select("a")

	assert.True(t, n.Selected("a"))
	assert.False(t, n.Selected("a1"), "independent mode must not cascade")
	assert.False(t, n.Mixed("root"), "independent mode must not recompute ancestors")

	n.Toggle("a")
	assert.False(t, n.Selected("a"))
}

func TestLeafMode(t *testing.T) {
	n := New[int](WithSelection(SelectLeaf))
	n.Register(Registration[int]{ID: "root", Children: []Registration[int]{
		{ID: "a"}, {ID: "b"},
	}})

	n.Select("root")

	assert.False(t, n.Selected("root"), "branch itself is never selected in leaf mode")
	assert.True(t, n.Selected("a"))
	assert.True(t, n.Selected("b"))
}

func TestLeafModeToggleInspectsLeaves(t *testing.T) {
	n := New[int](WithSelection(SelectLeaf))
	n.Register(Registration[int]{ID: "root", Children: []Registration[int]{
		{ID: "a"}, {ID: "b"},
	}})

	n.Select("a")
	n.Toggle("root")
	assert.True(t, n.Selected("a"))
	assert.True(t, n.Selected("b"), "partial leaves toggles to select all")

	n.Toggle("root")
	assert.False(t, n.Selected("a"))
	assert.False(t, n.Selected("b"))
}

func TestLeafModeSelectLeafDirectly(t *testing.T) {
	n := New[int](WithSelection(SelectLeaf))
	n.Register(Registration[int]{ID: "root", Children: []Registration[int]{
		{ID: "a"}, {ID: "b"},
	}})

	n.Select("a")
	assert.True(t, n.Selected("a"))
	assert.False(t, n.Selected("b"))
}

func TestCascadeMandatoryBlocksEmptyingUnselect(t *testing.T) {
	n := cascadeTree(WithMandatory(group.MandatoryOn))

	n.Select("a")
	require.NotEmpty(t, n.SelectedIDs())

	// Unselecting 'a' would clear every selected id (all are inside a's
	// subtree), so the whole operation is refused.
	n.Unselect("a")
	assert.True(t, n.Selected("a"))
	assert.True(t, n.Selected("a1"))

	// With selection outside the subtree the unselect proceeds.
	n.Select("b")
	n.Unselect("a")
	assert.False(t, n.Selected("a"))
	assert.True(t, n.Selected("b"))
}

func TestSelectUnknownIDInTreeIsNoOp(t *testing.T) {
	n := cascadeTree()
	n.Select("ghost")
	assert.Empty(t, n.SelectedIDs())
}
