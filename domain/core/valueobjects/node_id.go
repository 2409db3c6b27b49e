package valueobjects

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// RootNodeID is the distinguished identifier of a project's origin node.
// The root is created at project bootstrap and is exempt from deletion.
const RootNodeID = "node:root"

// NodeID is a value object representing a unique node identifier.
// Identifiers are record ids of the form "node:<unique part>"; the unique
// part is a UUID for generated nodes and "root" for the project origin.
type NodeID struct {
	value string
}

// NewNodeID creates a new random NodeID
func NewNodeID() NodeID {
	return NodeID{value: "node:" + uuid.New().String()}
}

// RootID returns the NodeID of the project root node
func RootID() NodeID {
	return NodeID{value: RootNodeID}
}

// NewNodeIDFromString creates a NodeID from an existing string
func NewNodeIDFromString(id string) (NodeID, error) {
	if id == "" {
		return NodeID{}, errors.New("node ID cannot be empty")
	}
	if !strings.HasPrefix(id, "node:") || len(id) <= len("node:") {
		return NodeID{}, errors.New("node ID must have the form node:<id>")
	}
	return NodeID{value: id}, nil
}

// String returns the string representation of the NodeID
func (id NodeID) String() string {
	return id.value
}

// Equals checks if two NodeIDs are equal
func (id NodeID) Equals(other NodeID) bool {
	return id.value == other.value
}

// IsZero checks if the NodeID is the zero value
func (id NodeID) IsZero() bool {
	return id.value == ""
}

// IsRoot reports whether this is the protected project root
func (id NodeID) IsRoot() bool {
	return id.value == RootNodeID
}

// MarshalJSON implements json.Marshaler
func (id NodeID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *NodeID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("NodeID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
