package ports

import (
	"context"

	"nexus-backend/domain/core/entities"
)

// Embedder is one embedding backend. A nil vector with a nil error means
// "could not embed this node", which callers treat as a skip, not a failure.
type Embedder interface {
	// Name returns the provider name the vector is stored under.
	Name() string

	// Embed computes a vector for the node's current content.
	Embed(ctx context.Context, node *entities.Node) ([]float32, error)
}
