package nested

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestOnboardBuildsTree(t *testing.T) {
	n := New[int]()

	tickets := n.Onboard([]Registration[int]{
		{ID: "a"},
		{ID: "b", ParentID: "a"},
		{ID: "c", ParentID: "a"},
		{ID: "d", ParentID: "b"},
	})

	require.Len(t, tickets, 4)
	assert.Equal(t, []string{"a"}, n.Roots())
	assert.Equal(t, []string{"b", "c"}, n.Children("a"))
	assert.Equal(t, []string{"d"}, n.Children("b"))
	assert.Equal(t, 4, n.Size())
}

func TestOnboardForwardParentReference(t *testing.T) {
	// A parent reference to an id registered later in the same batch does
	// not exist at registration time: warn and degrade to root, exactly as
	// sequential registration would.
	n := New[int]()
	n.Onboard([]Registration[int]{
		{ID: "child", ParentID: "parent"},
		{ID: "parent"},
	})

	_, ok := n.Parent("child")
	assert.False(t, ok)
	assert.ElementsMatch(t, []string{"child", "parent"}, n.Roots())
}

func TestOnboardEmpty(t *testing.T) {
	n := New[int]()
	assert.Nil(t, n.Onboard(nil))
	assert.Equal(t, 0, n.Size())
}

func TestOnboardInlineChildren(t *testing.T) {
	n := New[int]()
	n.Onboard([]Registration[int]{
		{ID: "a", Children: []Registration[int]{{ID: "a1"}, {ID: "a2"}}},
		{ID: "b", ParentID: "a"},
	})

	assert.Equal(t, []string{"a1", "a2", "b"}, n.Children("a"))
}

func TestOnboardSequentialEquivalence(t *testing.T) {
	regs := []Registration[int]{
		{ID: "a"},
		{ID: "b", ParentID: "a"},
		{ID: "c", ParentID: "b"},
		{ID: "d", ParentID: "a"},
		{ID: "e"},
		{ID: "f", ParentID: "missing"},
	}

	batched := New[int]()
	batched.Onboard(regs)

	sequential := New[int]()
	for _, r := range regs {
		sequential.Register(r)
	}

	assertSameTree(t, sequential, batched)
}

// TestOnboardEquivalenceProperty drives the batch/sequential equivalence
// with generated registration lists: random parent links, including unknown
// and forward references.
func TestOnboardEquivalenceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 30).Draw(t, "count")
		regs := make([]Registration[int], count)
		for i := range regs {
			id := fmt.Sprintf("n%d", i)
			parent := ""
			// Bias toward earlier ids so real trees form; occasionally
			// reference a later or unknown id to exercise degradation.
			choice := rapid.IntRange(0, 10).Draw(t, fmt.Sprintf("parent%d", i))
			switch {
			case choice == 0:
				parent = "unknown"
			case choice <= 2 && i+1 < count:
				parent = fmt.Sprintf("n%d", i+1)
			case choice <= 8 && i > 0:
				parent = fmt.Sprintf("n%d", rapid.IntRange(0, i-1).Draw(t, fmt.Sprintf("pick%d", i)))
			}
			regs[i] = Registration[int]{ID: id, Value: i, ParentID: parent}
		}

		batched := New[int]()
		batched.Onboard(regs)

		sequential := New[int]()
		for _, r := range regs {
			sequential.Register(r)
		}

		assertSameTree(t, sequential, batched)
	})
}

func assertSameTree(t interface {
	Errorf(format string, args ...any)
	FailNow()
}, want, got *Nested[int]) {
	require.Equal(t, want.Size(), got.Size())
	require.Equal(t, want.Keys(), got.Keys())
	require.Equal(t, want.Roots(), got.Roots())
	require.Equal(t, want.Leaves(), got.Leaves())
	for _, id := range want.Keys() {
		require.Equal(t, want.Children(id), got.Children(id), "children of %s", id)
		wp, wok := want.Parent(id)
		gp, gok := got.Parent(id)
		require.Equal(t, wok, gok, "parent presence of %s", id)
		require.Equal(t, wp, gp, "parent of %s", id)
	}
}
