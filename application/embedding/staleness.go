package embedding

import (
	"context"

	"nexus-backend/domain/core/entities"
)

// Status is the result of a staleness evaluation.
type Status struct {
	IsStale        bool
	StaleProviders []Provider
	CurrentHash    string
}

// Evaluator decides which providers must recompute a vector for a node.
type Evaluator struct {
	registry *Registry
}

// NewEvaluator creates a staleness evaluator over the given registry
func NewEvaluator(registry *Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Evaluate compares the node's stored fingerprint with its current content.
// A matching fingerprint means nothing is stale, even for providers that
// never embedded the node; a provider enabled after the fact is picked up on
// the next content edit, not retroactively. On mismatch every active
// provider is stale, regardless of which input changed. Per-input diffing
// would be cheaper but risks partial-embedding drift.
func (e *Evaluator) Evaluate(ctx context.Context, node *entities.Node) Status {
	currentHash := HashContent(node)

	if node.ContentHash() == currentHash {
		return Status{IsStale: false, CurrentHash: currentHash}
	}

	stale := e.registry.ActiveProviders(ctx)
	return Status{
		IsStale:        len(stale) > 0,
		StaleProviders: stale,
		CurrentHash:    currentHash,
	}
}
