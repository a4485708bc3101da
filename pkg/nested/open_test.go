package nested

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deepTree builds:
//
//	top
//	└── mid
//	    └── low
//	        └── leaf
//	side
func deepTree() *Nested[int] {
	n := New[int]()
	n.Register(Registration[int]{ID: "top", Children: []Registration[int]{
		{ID: "mid", Children: []Registration[int]{
			{ID: "low", Children: []Registration[int]{{ID: "leaf"}}},
		}},
	}})
	n.Register(Registration[int]{ID: "side"})
	return n
}

func TestOpenCloseFlip(t *testing.T) {
	n := deepTree()

	n.Open("top")
	assert.True(t, n.Opened("top"))

	n.Close("top")
	assert.False(t, n.Opened("top"))

	n.Flip("top")
	assert.True(t, n.Opened("top"))
	n.Flip("top")
	assert.False(t, n.Opened("top"))
}

func TestOpenUnknownIDNoOp(t *testing.T) {
	n := deepTree()
	n.Open("ghost")
	assert.Empty(t, n.OpenedIDs())
}

func TestSingleOpenExclusivity(t *testing.T) {
	n := New[int](WithOpenMode(OpenSingle))
	n.Register(Registration[int]{ID: "x", Children: []Registration[int]{{ID: "x1"}}})
	n.Register(Registration[int]{ID: "y", Children: []Registration[int]{{ID: "y1"}}})

	n.Open("x")
	n.Open("y")

	assert.False(t, n.Opened("x"))
	assert.True(t, n.Opened("y"))
}

func TestSingleOpenKeepsAncestorChain(t *testing.T) {
	n := New[int](WithOpenMode(OpenSingle))
	n.Register(Registration[int]{ID: "top", Children: []Registration[int]{
		{ID: "mid", Children: []Registration[int]{{ID: "low"}}},
	}})
	n.Register(Registration[int]{ID: "other"})

	n.Open("top")
	n.Open("mid")

	assert.True(t, n.Opened("top"), "ancestors of the opened node stay open")
	assert.True(t, n.Opened("mid"))

	n.Open("other")
	assert.False(t, n.Opened("top"))
	assert.False(t, n.Opened("mid"))
	assert.True(t, n.Opened("other"))
}

func TestReveal(t *testing.T) {
	n := deepTree()

	n.Reveal("leaf")

	assert.True(t, n.Opened("top"))
	assert.True(t, n.Opened("mid"))
	assert.True(t, n.Opened("low"))
	assert.False(t, n.Opened("leaf"), "reveal opens ancestors, not the node itself")
}

func TestUnfoldOpensOneLevel(t *testing.T) {
	n := deepTree()

	n.Unfold("top")

	assert.True(t, n.Opened("top"))
	assert.True(t, n.Opened("mid"), "immediate branch child opens")
	assert.False(t, n.Opened("low"), "unfold stops after one level")
}

func TestExpandOpensWholeSubtree(t *testing.T) {
	n := deepTree()

	n.Expand("top")

	assert.True(t, n.Opened("top"))
	assert.True(t, n.Opened("mid"))
	assert.True(t, n.Opened("low"))
	assert.False(t, n.Opened("leaf"), "leaves are never opened")
	assert.False(t, n.Opened("side"))
}

func TestExpandLeafIsNoOp(t *testing.T) {
	n := deepTree()
	n.Expand("leaf")
	assert.Empty(t, n.OpenedIDs())
}

func TestExpandAllCollapseAll(t *testing.T) {
	n := deepTree()

	n.ExpandAll()
	assert.ElementsMatch(t, []string{"top", "mid", "low"}, n.OpenedIDs())

	n.CollapseAll()
	assert.Empty(t, n.OpenedIDs())
}

func TestOpenAllOptionOpensParentOnRegister(t *testing.T) {
	n := New[int](WithOpenAll())
	n.Register(Registration[int]{ID: "p"})
	require.False(t, n.Opened("p"))

	n.Register(Registration[int]{ID: "c", ParentID: "p"})
	assert.True(t, n.Opened("p"), "registering a child auto-opens its parent")
}

func TestAutoRevealOption(t *testing.T) {
	n := New[int](WithAutoReveal())
	n.Register(Registration[int]{ID: "top", Children: []Registration[int]{
		{ID: "mid", Children: []Registration[int]{{ID: "low"}}},
	}})

	n.Open("low")

	assert.True(t, n.Opened("low"))
	assert.True(t, n.Opened("mid"))
	assert.True(t, n.Opened("top"))
}

func TestOpenedItemsInRegistrationOrder(t *testing.T) {
	n := New[string]()
	n.Register(Registration[string]{ID: "a", Value: "alpha"})
	n.Register(Registration[string]{ID: "b", Value: "beta", ParentID: "a"})

	n.Open("b", "a")

	assert.Equal(t, []string{"a", "b"}, n.OpenedIDs())
	assert.Equal(t, []string{"alpha", "beta"}, n.OpenedItems())
}

func TestCustomOpenStrategy(t *testing.T) {
	// A strategy that refuses to open anything.
	n := New[int](WithOpenStrategy(lockedStrategy{}))
	n.Register(Registration[int]{ID: "a", Children: []Registration[int]{{ID: "b"}}})

	n.Open("a")
	assert.False(t, n.Opened("a"))
}

type lockedStrategy struct{}

func (lockedStrategy) OnOpen(string, OpenAccess) {}
func (lockedStrategy) OnClose(id string, tree OpenAccess) {
	tree.MarkOpened(false, id)
}
