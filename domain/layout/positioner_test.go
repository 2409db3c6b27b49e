package layout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus-backend/domain/core/valueobjects"
	"nexus-backend/domain/schema"
)

func archWithFlows(x, y, z schema.AxisPreference) *schema.NodeArchetype {
	return &schema.NodeArchetype{
		Type:   "topic",
		Nature: schema.NatureChild,
		FlowX:  x,
		FlowY:  y,
		FlowZ:  z,
	}
}

func TestPositioner_FlowDirections(t *testing.T) {
	p := NewPositioner(rand.New(rand.NewSource(42)))
	parent, err := valueobjects.NewPosition(100, -50, 0)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		pos := p.Position(parent, archWithFlows(schema.AxisPositive, schema.AxisNegative, schema.AxisNeutral))

		// positive flow lands a full offset beyond the parent
		assert.GreaterOrEqual(t, pos.X(), parent.X()+150)
		assert.Less(t, pos.X(), parent.X()+200)

		// negative flow lands a full offset before the parent
		assert.LessOrEqual(t, pos.Y(), parent.Y()-150)
		assert.Greater(t, pos.Y(), parent.Y()-200)

		// neutral flow stays clustered
		assert.LessOrEqual(t, math.Abs(pos.Z()-parent.Z()), 20.0)
	}
}

func TestPositioner_FreeFlowBounded(t *testing.T) {
	p := NewPositioner(rand.New(rand.NewSource(7)))
	parent := valueobjects.Origin()
	arch := archWithFlows(schema.AxisFree, schema.AxisFree, schema.AxisFree)

	const bound = 3 * 200.0
	for i := 0; i < 1000; i++ {
		pos := p.Position(parent, arch)
		assert.LessOrEqual(t, math.Abs(pos.X()), bound)
		assert.LessOrEqual(t, math.Abs(pos.Y()), bound)
		assert.LessOrEqual(t, math.Abs(pos.Z()), bound)
	}
}

func TestPositioner_UsesChildArchetypeFlows(t *testing.T) {
	// parent is a free-flowing archetype, but placement follows the child's
	// preferences on every axis
	p := NewPositioner(rand.New(rand.NewSource(1)))
	parent := valueobjects.Origin()
	child := archWithFlows(schema.AxisPositive, schema.AxisPositive, schema.AxisNegative)

	pos := p.Position(parent, child)
	assert.Greater(t, pos.X(), 0.0)
	assert.Greater(t, pos.Y(), 0.0)
	assert.Less(t, pos.Z(), 0.0)
}

func TestPositioner_Deterministic(t *testing.T) {
	arch := archWithFlows(schema.AxisFree, schema.AxisNeutral, schema.AxisPositive)

	a := NewPositioner(rand.New(rand.NewSource(99))).Position(valueobjects.Origin(), arch)
	b := NewPositioner(rand.New(rand.NewSource(99))).Position(valueobjects.Origin(), arch)
	assert.True(t, a.Equals(b))
}
