package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivateSingleModeExclusive(t *testing.T) {
	g := New[int]()
	g.Register(Registration[int]{ID: "x"})
	g.Register(Registration[int]{ID: "y"})

	g.Activate("x")
	g.Activate("y")

	assert.False(t, g.Activated("x"))
	assert.True(t, g.Activated("y"))
	assert.Equal(t, []string{"y"}, g.ActiveIDs())
}

func TestActivateMultipleMode(t *testing.T) {
	g := New[int](WithActiveMode(ActiveMultiple))
	g.Register(Registration[int]{ID: "x"})
	g.Register(Registration[int]{ID: "y"})

	g.Activate("x")
	g.Activate("y")

	assert.True(t, g.Activated("x"))
	assert.True(t, g.Activated("y"))
}

func TestDeactivate(t *testing.T) {
	g := New[int](WithActiveMode(ActiveMultiple))
	g.Register(Registration[int]{ID: "x"})
	g.Register(Registration[int]{ID: "y"})

	g.Activate("x", "y")
	g.Deactivate("x")
	assert.Equal(t, []string{"y"}, g.ActiveIDs())

	g.DeactivateAll()
	assert.Empty(t, g.ActiveIDs())
}

func TestActiveItemsAndIndexes(t *testing.T) {
	g := New[string](WithActiveMode(ActiveMultiple))
	g.Register(Registration[string]{ID: "a", Value: "alpha"})
	g.Register(Registration[string]{ID: "b", Value: "beta"})
	g.Register(Registration[string]{ID: "c", Value: "gamma"})

	g.Activate("c", "a")

	assert.Equal(t, []string{"alpha", "gamma"}, g.ActiveValues())
	assert.Equal(t, []int{0, 2}, g.ActiveIndexes())
}

func TestActivateUnknownIDNoOp(t *testing.T) {
	g := New[int]()
	g.Activate("ghost")
	assert.Empty(t, g.ActiveIDs())
}
