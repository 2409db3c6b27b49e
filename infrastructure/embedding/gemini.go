package embedding

import (
	"context"
	"os"

	geminiembed "github.com/cloudwego/eino-ext/components/embedding/gemini"
	einoembedding "github.com/cloudwego/eino/components/embedding"
	"go.uber.org/zap"

	"nexus-backend/domain/core/entities"
	pkgerrors "nexus-backend/pkg/errors"
)

// GeminiEmbedder embeds node content through the Gemini embedding API.
type GeminiEmbedder struct {
	embedder einoembedding.Embedder
	logger   *zap.Logger
}

// NewGeminiEmbedder creates a Gemini-backed embedder
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, pkgerrors.NewValidationError("gemini API key is required")
	}
	// the gemini client reads its credential from the environment
	_ = os.Setenv("GOOGLE_API_KEY", apiKey)
	_ = os.Setenv("GEMINI_API_KEY", apiKey)

	embedder, err := geminiembed.NewEmbedder(ctx, &geminiembed.EmbeddingConfig{
		Model: model,
	})
	if err != nil {
		return nil, pkgerrors.NewExternalError("gemini", err)
	}
	return &GeminiEmbedder{embedder: embedder, logger: logger}, nil
}

// Name returns the provider name
func (e *GeminiEmbedder) Name() string {
	return "gemini"
}

// Embed computes a vector for the node. Nodes with no embeddable text are
// skipped with a nil vector.
func (e *GeminiEmbedder) Embed(ctx context.Context, node *entities.Node) ([]float32, error) {
	text := embeddableText(node)
	if text == "" {
		return nil, nil
	}

	vectors, err := e.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, pkgerrors.NewExternalError("gemini", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, nil
	}
	return toFloat32(vectors[0]), nil
}
