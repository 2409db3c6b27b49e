package dynamodb

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus-backend/domain/core/entities"
)

// DynamoDB hands lists back as []interface{} and numbers as float64, so a
// node has to survive the Marshal/Unmarshal round trip with nested media
// objects and embedding vectors intact.
func TestUnmarshalRecord_NodeRoundTrip(t *testing.T) {
	node := &entities.Node{
		ID:      "node:abc",
		Type:    "article",
		Title:   "Edge caching",
		Summary: "CDN strategies.",
		Media: []entities.MediaItem{
			{
				ID:       "media-1",
				Name:     "topology",
				Type:     "image",
				URL:      "https://cdn.example.com/x.webp",
				MimeType: "image/webp",
			},
		},
		Embeddings: map[string][]float32{
			"gemini": {0.25, 0.5},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	item, err := attributevalue.MarshalMap(node.Fields())
	require.NoError(t, err)

	record, err := unmarshalRecord(item)
	require.NoError(t, err)

	restored := entities.NodeFromFields(record)
	require.Len(t, restored.Media, 1)
	assert.Equal(t, []string{"https://cdn.example.com/x.webp"}, restored.MediaURLs())
	assert.Equal(t, "image/webp", restored.Media[0].MimeType)
	assert.Equal(t, []float32{0.25, 0.5}, restored.Embeddings["gemini"])
}
