package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"nexus-backend/domain/core/entities"
)

func TestEvaluator_FreshNode(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(map[Provider]bool{ProviderGemini: true, ProviderOpenAI: true}, newFakeSettings())
	evaluator := NewEvaluator(registry)

	node := testNode(t)
	node.Metadata[entities.MetaContentHash] = HashContent(node)

	status := evaluator.Evaluate(ctx, node)
	assert.False(t, status.IsStale)
	assert.Empty(t, status.StaleProviders)
	assert.Equal(t, HashContent(node), status.CurrentHash)
}

func TestEvaluator_NeverEmbeddedProviderNotStaleWhileHashMatches(t *testing.T) {
	// a provider enabled after the last embed is picked up on the next
	// content edit, not retroactively
	ctx := context.Background()
	registry := NewRegistry(map[Provider]bool{ProviderGemini: true, ProviderVoyage: true}, newFakeSettings())
	evaluator := NewEvaluator(registry)

	node := testNode(t)
	node.Embeddings = map[string][]float32{"gemini": {0.1, 0.2}}
	node.Metadata[entities.MetaContentHash] = HashContent(node)

	status := evaluator.Evaluate(ctx, node)
	assert.False(t, status.IsStale)
	assert.Empty(t, status.StaleProviders)
}

func TestEvaluator_ContentChangeInvalidatesAllActive(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(map[Provider]bool{ProviderGemini: true, ProviderOpenAI: true}, newFakeSettings())
	evaluator := NewEvaluator(registry)

	node := testNode(t)
	node.Metadata[entities.MetaContentHash] = HashContent(node)
	node.Title = "Edited Title"

	status := evaluator.Evaluate(ctx, node)
	assert.True(t, status.IsStale)
	assert.Equal(t, []Provider{ProviderGemini, ProviderOpenAI}, status.StaleProviders)
}

func TestEvaluator_NoActiveProvidersNothingStale(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(map[Provider]bool{}, newFakeSettings())
	evaluator := NewEvaluator(registry)

	node := testNode(t)
	node.Title = "Edited"

	status := evaluator.Evaluate(ctx, node)
	assert.False(t, status.IsStale)
	assert.Empty(t, status.StaleProviders)
}
