package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus-backend/domain/core/valueobjects"
	"nexus-backend/domain/schema"
)

func TestNewNode(t *testing.T) {
	node, err := NewNode("topic", "Distributed Systems")
	require.NoError(t, err)
	assert.Contains(t, node.ID, "node:")
	assert.Equal(t, "topic", node.Type)
	assert.Equal(t, 1.0, node.Val)
	assert.False(t, node.IsRoot())

	_, err = NewNode("", "title")
	assert.Error(t, err)
	_, err = NewNode("topic", "")
	assert.Error(t, err)
}

func TestNode_Position(t *testing.T) {
	node, err := NewNode("topic", "t")
	require.NoError(t, err)

	pos, err := valueobjects.NewPosition(10, -20, 30)
	require.NoError(t, err)
	node.SetPosition(pos)
	assert.Equal(t, 10.0, node.X)
	assert.Equal(t, -20.0, node.Y)
	assert.Equal(t, 30.0, node.Z)
	assert.True(t, node.Position().Equals(pos))
}

func TestNode_EmbeddingMetadata(t *testing.T) {
	node, err := NewNode("topic", "t")
	require.NoError(t, err)

	assert.Empty(t, node.ContentHash())
	_, ok := node.LastEmbedded()
	assert.False(t, ok)

	now := time.Now().UTC().Truncate(time.Second)
	node.Metadata[MetaContentHash] = "1a2b3c"
	node.Metadata[MetaLastEmbedded] = now.Format(time.RFC3339)

	assert.Equal(t, "1a2b3c", node.ContentHash())
	ts, ok := node.LastEmbedded()
	require.True(t, ok)
	assert.True(t, ts.Equal(now))
}

func TestNode_MediaURLs(t *testing.T) {
	node, err := NewNode("article", "t")
	require.NoError(t, err)
	node.Media = []MediaItem{
		{ID: "1", URL: "https://cdn.example.com/a.webp", Type: "image"},
		{ID: "2", URL: "https://cdn.example.com/b.mp4", Type: "video"},
	}
	assert.Equal(t, []string{"https://cdn.example.com/a.webp", "https://cdn.example.com/b.mp4"}, node.MediaURLs())
}

func TestNewEdge(t *testing.T) {
	tax := &schema.EdgeTaxonomy{
		Type:            "RELATIONAL",
		Nature:          schema.EdgeNatureChild,
		SourceType:      "PARENT_OF",
		DestinationType: "CHILD_OF",
	}

	edge, err := NewEdge("node:a", "node:b", "CHILD_OF", tax)
	require.NoError(t, err)
	assert.Contains(t, edge.ID, "edge:")
	assert.Equal(t, schema.EdgeNatureChild, edge.Nature)
	assert.Equal(t, 1.0, edge.Strength)
	assert.Equal(t, 1.0, edge.Weight)

	_, err = NewEdge("node:a", "node:a", "CHILD_OF", tax)
	assert.Error(t, err)

	_, err = NewEdge("node:a", "node:b", "RELATED_TO", tax)
	assert.Error(t, err)

	_, err = NewEdge("", "node:b", "CHILD_OF", tax)
	assert.Error(t, err)
}
