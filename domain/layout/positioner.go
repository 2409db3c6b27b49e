// Package layout derives initial spatial coordinates for new graph nodes.
// It is a placement heuristic, not a physical simulation; any force-directed
// refinement happens in the renderer.
package layout

import (
	"math/rand"

	"nexus-backend/domain/core/valueobjects"
	"nexus-backend/domain/schema"
)

const (
	offsetMin     = 150.0
	offsetSpread  = 50.0
	neutralJitter = 40.0
	freeSpread    = 3.0
)

// Positioner computes child node positions from a parent position and the
// child archetype's per-axis flow preferences. The random source is injected
// so placement is reproducible in tests.
type Positioner struct {
	rng *rand.Rand
}

// NewPositioner creates a positioner backed by the given random source
func NewPositioner(rng *rand.Rand) *Positioner {
	return &Positioner{rng: rng}
}

// Position derives coordinates for a new node of the given archetype placed
// under parent. Each axis draws its own offset in [150, 200): positive flow
// pushes the child along the axis, negative pulls it back, neutral keeps it
// clustered within 20 units, free scatters it up to 1.5 offsets either way.
// The archetype consulted is the child's, never the parent's.
func (p *Positioner) Position(parent valueobjects.Position, arch *schema.NodeArchetype) valueobjects.Position {
	x := p.coord(arch.FlowX, parent.X())
	y := p.coord(arch.FlowY, parent.Y())
	z := p.coord(arch.FlowZ, parent.Z())

	pos, err := valueobjects.NewPosition(x, y, z)
	if err != nil {
		return parent
	}
	return pos
}

func (p *Positioner) coord(flow schema.AxisPreference, current float64) float64 {
	offset := offsetMin + p.rng.Float64()*offsetSpread
	switch flow {
	case schema.AxisPositive:
		return current + offset
	case schema.AxisNegative:
		return current - offset
	case schema.AxisNeutral:
		return current + (p.rng.Float64()-0.5)*neutralJitter
	default:
		return current + (p.rng.Float64()-0.5)*offset*freeSpread
	}
}
