package entities

import (
	"time"

	"github.com/google/uuid"

	"nexus-backend/domain/schema"
	pkgerrors "nexus-backend/pkg/errors"
)

// Edge is a directed relationship instance between two nodes. Nature is
// copied from the resolved taxonomy at creation time so the renderer never
// needs a schema lookup. Edges are immutable after creation except Metadata.
type Edge struct {
	ID       string                 `json:"id" dynamodbav:"id"`
	Source   string                 `json:"source" dynamodbav:"source"`
	Target   string                 `json:"target" dynamodbav:"target"`
	Type     string                 `json:"type" dynamodbav:"type"`
	Nature   schema.EdgeNature      `json:"nature" dynamodbav:"nature"`
	Strength float64                `json:"strength" dynamodbav:"strength"`
	Weight   float64                `json:"weight" dynamodbav:"weight"`
	Data     map[string]interface{} `json:"data,omitempty" dynamodbav:"data"`
	Metadata map[string]interface{} `json:"metadata,omitempty" dynamodbav:"metadata"`

	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
}

// NewEdge creates an edge instance from a resolved taxonomy. The edge type
// must be one of the taxonomy's direction labels.
func NewEdge(sourceID, targetID, edgeType string, tax *schema.EdgeTaxonomy) (*Edge, error) {
	if sourceID == "" || targetID == "" {
		return nil, pkgerrors.NewValidationError("edge endpoints cannot be empty")
	}
	if sourceID == targetID {
		return nil, pkgerrors.NewValidationError("edge cannot connect a node to itself")
	}
	if tax == nil || !tax.Matches(edgeType) {
		return nil, pkgerrors.NewUnknownEdgeTypeError(edgeType)
	}
	return &Edge{
		ID:        "edge:" + uuid.New().String(),
		Source:    sourceID,
		Target:    targetID,
		Type:      edgeType,
		Nature:    tax.Nature,
		Strength:  1.0,
		Weight:    1.0,
		CreatedAt: time.Now(),
	}, nil
}
