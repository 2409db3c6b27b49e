package embedding

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"nexus-backend/application/ports"
	"nexus-backend/domain/core/entities"
	pkgerrors "nexus-backend/pkg/errors"
)

// Voyage has no Go SDK, so this adapter talks to its HTTP API directly.
const (
	voyageMultimodalURL = "https://api.voyageai.com/v1/multimodalembeddings"
	voyageTextURL       = "https://api.voyageai.com/v1/embeddings"
	voyageTextModel     = "voyage-3-large"
)

// VoyageEmbedder embeds node content through Voyage AI. Nodes with visual
// media go through the multimodal endpoint, with a text-only fallback when
// the multimodal call is rejected.
type VoyageEmbedder struct {
	apiKey        string
	model         string
	multimodalURL string
	textURL       string
	client        *http.Client
	media         ports.MediaStore
	logger        *zap.Logger
}

// NewVoyageEmbedder creates a Voyage-backed embedder. media may be nil, in
// which case visual media is skipped.
func NewVoyageEmbedder(apiKey, model string, media ports.MediaStore, logger *zap.Logger) (*VoyageEmbedder, error) {
	if apiKey == "" {
		return nil, pkgerrors.NewValidationError("voyage API key is required")
	}
	return &VoyageEmbedder{
		apiKey:        apiKey,
		model:         model,
		multimodalURL: voyageMultimodalURL,
		textURL:       voyageTextURL,
		client:        &http.Client{Timeout: 60 * time.Second},
		media:         media,
		logger:        logger,
	}, nil
}

// Name returns the provider name
func (e *VoyageEmbedder) Name() string {
	return "voyage"
}

// Embed computes a vector for the node's text and media
func (e *VoyageEmbedder) Embed(ctx context.Context, node *entities.Node) ([]float32, error) {
	text := embeddableText(node)

	parts := make([]map[string]interface{}, 0, 1+len(node.Media))
	if text != "" {
		parts = append(parts, map[string]interface{}{"type": "text", "content": text})
	}

	if e.media != nil {
		for _, item := range visualMedia(node) {
			data, err := e.media.Download(ctx, item.URL)
			if err != nil || data == nil {
				e.logger.Warn("media not retrievable for embedding",
					zap.String("url", item.URL), zap.Error(err))
				continue
			}
			mime := item.MimeType
			if mime == "" {
				mime = "image/webp"
			}
			parts = append(parts, map[string]interface{}{
				"type":      "image",
				"content":   base64.StdEncoding.EncodeToString(data),
				"mime_type": mime,
			})
		}
	}

	if len(parts) == 0 {
		return nil, nil
	}

	vector, err := e.post(ctx, e.multimodalURL, map[string]interface{}{
		"inputs":     []interface{}{parts},
		"model":      e.model,
		"input_type": "document",
	})
	if err == nil {
		return vector, nil
	}
	if text == "" {
		return nil, err
	}

	e.logger.Warn("voyage multimodal embedding failed, falling back to text",
		zap.String("node_id", node.ID), zap.Error(err))
	return e.post(ctx, e.textURL, map[string]interface{}{
		"input": []string{text},
		"model": voyageTextModel,
	})
}

type voyageResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (e *VoyageEmbedder) post(ctx context.Context, url string, payload map[string]interface{}) ([]float32, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.NewInternalError("marshal voyage payload").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.NewInternalError("build voyage request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, pkgerrors.NewExternalError("voyage", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, pkgerrors.NewExternalError("voyage",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(detail)))
	}

	var parsed voyageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, pkgerrors.NewExternalError("voyage", err)
	}
	if len(parsed.Data) == 0 || len(parsed.Data[0].Embedding) == 0 {
		return nil, nil
	}
	return toFloat32(parsed.Data[0].Embedding), nil
}
