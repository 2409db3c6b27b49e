package schema

import (
	"fmt"

	pkgerrors "nexus-backend/pkg/errors"
)

// Nature classifies an archetype as a structural container or a
// descriptive leaf.
type Nature string

const (
	NatureChild Nature = "child"
	NatureSub   Nature = "sub"
)

// IsValid checks if the nature is one of the two allowed values
func (n Nature) IsValid() bool {
	return n == NatureChild || n == NatureSub
}

// AxisPreference controls how a new child's coordinate on one axis is
// derived from its parent's coordinate.
type AxisPreference string

const (
	AxisPositive AxisPreference = "positive"
	AxisNegative AxisPreference = "negative"
	AxisNeutral  AxisPreference = "neutral"
	AxisFree     AxisPreference = "free"
)

// IsValid checks if the preference is one of the four allowed values
func (a AxisPreference) IsValid() bool {
	switch a {
	case AxisPositive, AxisNegative, AxisNeutral, AxisFree:
		return true
	}
	return false
}

// NodeArchetype is a named node class. It governs which node types may be
// attached as structural children or descriptive subnodes, the edge type
// used when none is specified, display color, and the per-axis flow
// preferences used to place new children in space.
type NodeArchetype struct {
	Type             string         `json:"type" dynamodbav:"type"`
	Nature           Nature         `json:"nature" dynamodbav:"nature"`
	Description      string         `json:"description" dynamodbav:"description"`
	Color            string         `json:"color" dynamodbav:"color"`
	DefaultEdge      string         `json:"defaultEdge" dynamodbav:"default_edge"`
	AllowedChildren  []string       `json:"allowedChildNodes" dynamodbav:"allowed_child_nodes"`
	AllowedSubNodes  []string       `json:"allowedSubNodes" dynamodbav:"allowed_sub_nodes"`
	FlowX            AxisPreference `json:"flow_x" dynamodbav:"flow_x"`
	FlowY            AxisPreference `json:"flow_y" dynamodbav:"flow_y"`
	FlowZ            AxisPreference `json:"flow_z" dynamodbav:"flow_z"`
}

// Validate checks the archetype's structural invariants
func (a *NodeArchetype) Validate() error {
	if a.Type == "" {
		return pkgerrors.NewValidationError("archetype type cannot be empty")
	}
	if !a.Nature.IsValid() {
		return pkgerrors.NewValidationError(fmt.Sprintf("invalid archetype nature: %q", a.Nature))
	}
	for _, f := range []AxisPreference{a.FlowX, a.FlowY, a.FlowZ} {
		if !f.IsValid() {
			return pkgerrors.NewValidationError(fmt.Sprintf("invalid axis preference: %q", f))
		}
	}
	return nil
}

// AllowsChild reports whether nodes of the given type may be attached as
// structural children of this archetype
func (a *NodeArchetype) AllowsChild(nodeType string) bool {
	return contains(a.AllowedChildren, nodeType)
}

// AllowsSubNode reports whether nodes of the given type may be attached as
// descriptive subnodes of this archetype
func (a *NodeArchetype) AllowsSubNode(nodeType string) bool {
	return contains(a.AllowedSubNodes, nodeType)
}

// Flow returns the axis preference for the named axis ("x", "y" or "z")
func (a *NodeArchetype) Flow(axis string) AxisPreference {
	switch axis {
	case "x":
		return a.FlowX
	case "y":
		return a.FlowY
	case "z":
		return a.FlowZ
	}
	return AxisNeutral
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
