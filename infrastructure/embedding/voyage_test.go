package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nexus-backend/domain/core/entities"
)

func voyageNode(t *testing.T) *entities.Node {
	t.Helper()
	node, err := entities.NewNode("topic", "Vector Search")
	require.NoError(t, err)
	node.Summary = "Similarity retrieval."
	return node
}

func TestVoyageEmbedder_TextEmbedding(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "voyage-multimodal-3", payload["model"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float64{0.1, 0.2, 0.3}},
			},
		})
	}))
	defer server.Close()

	e, err := NewVoyageEmbedder("test-key", "voyage-multimodal-3", nil, zap.NewNop())
	require.NoError(t, err)
	e.multimodalURL = server.URL

	vector, err := e.Embed(context.Background(), voyageNode(t))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestVoyageEmbedder_FallsBackToTextEndpoint(t *testing.T) {
	multimodal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not available", http.StatusBadRequest)
	}))
	defer multimodal.Close()

	text := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "voyage-3-large", payload["model"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float64{0.5}},
			},
		})
	}))
	defer text.Close()

	e, err := NewVoyageEmbedder("test-key", "voyage-multimodal-3", nil, zap.NewNop())
	require.NoError(t, err)
	e.multimodalURL = multimodal.URL
	e.textURL = text.URL

	vector, err := e.Embed(context.Background(), voyageNode(t))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, vector)
}

func TestVoyageEmbedder_EmptyNodeIsASkip(t *testing.T) {
	e, err := NewVoyageEmbedder("test-key", "voyage-multimodal-3", nil, zap.NewNop())
	require.NoError(t, err)

	node, err := entities.NewNode("topic", "x")
	require.NoError(t, err)
	node.Title = ""

	vector, err := e.Embed(context.Background(), node)
	require.NoError(t, err)
	assert.Nil(t, vector)
}

func TestVoyageEmbedder_RequiresKey(t *testing.T) {
	_, err := NewVoyageEmbedder("", "voyage-multimodal-3", nil, zap.NewNop())
	assert.Error(t, err)
}
