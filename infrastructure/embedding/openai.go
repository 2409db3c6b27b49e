package embedding

import (
	"context"

	openaiembed "github.com/cloudwego/eino-ext/components/embedding/openai"
	einoembedding "github.com/cloudwego/eino/components/embedding"
	"go.uber.org/zap"

	"nexus-backend/domain/core/entities"
	pkgerrors "nexus-backend/pkg/errors"
)

// OpenAIEmbedder embeds node content through the OpenAI embeddings API.
type OpenAIEmbedder struct {
	embedder einoembedding.Embedder
	logger   *zap.Logger
}

// NewOpenAIEmbedder creates an OpenAI-backed embedder
func NewOpenAIEmbedder(ctx context.Context, apiKey, model string, logger *zap.Logger) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, pkgerrors.NewValidationError("openai API key is required")
	}
	embedder, err := openaiembed.NewEmbedder(ctx, &openaiembed.EmbeddingConfig{
		APIKey: apiKey,
		Model:  model,
	})
	if err != nil {
		return nil, pkgerrors.NewExternalError("openai", err)
	}
	return &OpenAIEmbedder{embedder: embedder, logger: logger}, nil
}

// Name returns the provider name
func (e *OpenAIEmbedder) Name() string {
	return "openai"
}

// Embed computes a vector for the node's text. Media is folded in by URL
// reference; description-based enrichment happens upstream of embedding.
func (e *OpenAIEmbedder) Embed(ctx context.Context, node *entities.Node) ([]float32, error) {
	text := embeddableText(node)
	for _, m := range visualMedia(node) {
		text += "\n" + m.URL
	}
	if text == "" {
		return nil, nil
	}

	vectors, err := e.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, pkgerrors.NewExternalError("openai", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, nil
	}
	return toFloat32(vectors[0]), nil
}
