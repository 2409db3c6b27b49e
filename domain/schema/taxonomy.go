package schema

import (
	"fmt"

	pkgerrors "nexus-backend/pkg/errors"
)

// EdgeNature classifies a relationship as hierarchical (child), descriptive
// (sub) or associative (link).
type EdgeNature string

const (
	EdgeNatureChild EdgeNature = "child"
	EdgeNatureSub   EdgeNature = "sub"
	EdgeNatureLink  EdgeNature = "link"
)

// IsValid checks if the edge nature is one of the three allowed values
func (n EdgeNature) IsValid() bool {
	switch n {
	case EdgeNatureChild, EdgeNatureSub, EdgeNatureLink:
		return true
	}
	return false
}

// EdgeTaxonomy is a named edge class. SourceType and DestinationType are the
// asymmetric direction labels an edge instance may carry: PARENT_OF from the
// source's perspective, CHILD_OF from the target's. For symmetric relations
// the two labels are equal (RELATED_TO / RELATED_TO).
type EdgeTaxonomy struct {
	Type            string     `json:"type" dynamodbav:"type"`
	Nature          EdgeNature `json:"nature" dynamodbav:"nature"`
	SourceType      string     `json:"sourcetype" dynamodbav:"sourcetype"`
	DestinationType string     `json:"destinationtype" dynamodbav:"destinationtype"`
	Description     string     `json:"description" dynamodbav:"description"`
	Color           string     `json:"color" dynamodbav:"color"`
}

// Validate checks the taxonomy's structural invariants
func (t *EdgeTaxonomy) Validate() error {
	if t.Type == "" {
		return pkgerrors.NewValidationError("taxonomy type cannot be empty")
	}
	if !t.Nature.IsValid() {
		return pkgerrors.NewValidationError(fmt.Sprintf("invalid edge nature: %q", t.Nature))
	}
	if t.SourceType == "" || t.DestinationType == "" {
		return pkgerrors.NewValidationError("taxonomy direction labels cannot be empty")
	}
	return nil
}

// Matches reports whether the given edge type is one of this taxonomy's
// direction labels
func (t *EdgeTaxonomy) Matches(edgeType string) bool {
	return t.SourceType == edgeType || t.DestinationType == edgeType
}

// IsSymmetric reports whether both direction labels are equal
func (t *EdgeTaxonomy) IsSymmetric() bool {
	return t.SourceType == t.DestinationType
}
