package valueobjects

import (
	"math"

	pkgerrors "nexus-backend/pkg/errors"
)

// Position is a value object representing node coordinates in 3D space
type Position struct {
	x float64
	y float64
	z float64
}

// Origin returns the position at (0, 0, 0)
func Origin() Position {
	return Position{}
}

// NewPosition creates a 3D position with validation
func NewPosition(x, y, z float64) (Position, error) {
	if !isValidCoordinate(x) || !isValidCoordinate(y) || !isValidCoordinate(z) {
		return Position{}, pkgerrors.NewValidationError("invalid coordinates: must be finite numbers")
	}
	return Position{x: x, y: y, z: z}, nil
}

// X returns the X coordinate
func (p Position) X() float64 {
	return p.x
}

// Y returns the Y coordinate
func (p Position) Y() float64 {
	return p.y
}

// Z returns the Z coordinate
func (p Position) Z() float64 {
	return p.z
}

// DistanceTo calculates the Euclidean distance to another position
func (p Position) DistanceTo(other Position) float64 {
	dx := p.x - other.x
	dy := p.y - other.y
	dz := p.z - other.z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Equals checks if two positions are equal
func (p Position) Equals(other Position) bool {
	const epsilon = 1e-9
	return math.Abs(p.x-other.x) < epsilon &&
		math.Abs(p.y-other.y) < epsilon &&
		math.Abs(p.z-other.z) < epsilon
}

// Translate moves the position by the given offsets
func (p Position) Translate(dx, dy, dz float64) (Position, error) {
	return NewPosition(p.x+dx, p.y+dy, p.z+dz)
}

// isValidCoordinate checks if a coordinate is a valid finite number
func isValidCoordinate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
