package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus-backend/application/ports"
	"nexus-backend/domain/core/entities"
	pkgerrors "nexus-backend/pkg/errors"
)

func createNode(t *testing.T, store *GraphStore, id, nodeType string) string {
	t.Helper()
	created, err := store.CreateRecord(context.Background(), entities.TableNode, ports.Record{
		"id":   id,
		"type": nodeType,
	})
	require.NoError(t, err)
	return created
}

func TestGraphStore_CreateAndQuery(t *testing.T) {
	ctx := context.Background()
	store := NewGraphStore()

	createNode(t, store, "node:a", "topic")
	createNode(t, store, "node:b", "concept")

	all, err := store.Query(ctx, ports.Filter{Table: entities.TableNode})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	topics, err := store.Query(ctx, ports.Filter{
		Table:      entities.TableNode,
		Conditions: map[string]interface{}{"type": "topic"},
	})
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "node:a", topics[0]["id"])

	_, err = store.CreateRecord(ctx, entities.TableNode, ports.Record{"id": "node:a"})
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeConflict))
}

func TestGraphStore_RelateMaintainsAdjacency(t *testing.T) {
	ctx := context.Background()
	store := NewGraphStore()
	createNode(t, store, "node:parent", "topic")
	createNode(t, store, "node:child", "topic")

	_, err := store.Relate(ctx, "node:child", "node:parent", ports.Record{
		"type":   "CHILD_OF",
		"nature": "child",
	})
	require.NoError(t, err)

	records, err := store.Query(ctx, ports.Filter{
		Table:      entities.TableNode,
		Conditions: map[string]interface{}{"id": "node:parent"},
	})
	require.NoError(t, err)
	parent := entities.NodeFromFields(records[0])
	assert.Equal(t, []string{"node:child"}, parent.Children)

	records, err = store.Query(ctx, ports.Filter{
		Table:      entities.TableNode,
		Conditions: map[string]interface{}{"id": "node:child"},
	})
	require.NoError(t, err)
	child := entities.NodeFromFields(records[0])
	assert.Equal(t, []string{"node:parent"}, child.Parents)
}

func TestGraphStore_RelateLinkSkipsAdjacency(t *testing.T) {
	ctx := context.Background()
	store := NewGraphStore()
	createNode(t, store, "node:a", "topic")
	createNode(t, store, "node:b", "topic")

	_, err := store.Relate(ctx, "node:a", "node:b", ports.Record{
		"type":   "RELATED_TO",
		"nature": "link",
	})
	require.NoError(t, err)

	records, _ := store.Query(ctx, ports.Filter{
		Table:      entities.TableNode,
		Conditions: map[string]interface{}{"id": "node:b"},
	})
	assert.Empty(t, entities.NodeFromFields(records[0]).Children)
}

func TestGraphStore_RelateUnknownEndpoint(t *testing.T) {
	store := NewGraphStore()
	createNode(t, store, "node:a", "topic")

	_, err := store.Relate(context.Background(), "node:a", "node:ghost", ports.Record{"nature": "child"})
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraphStore_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := NewGraphStore()
	createNode(t, store, "node:parent", "topic")
	createNode(t, store, "node:child", "topic")

	_, err := store.Relate(ctx, "node:child", "node:parent", ports.Record{
		"type":   "CHILD_OF",
		"nature": "child",
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteRecord(ctx, "node:child"))

	// no dangling edges
	edges, err := store.Query(ctx, ports.Filter{Table: entities.TableEdge})
	require.NoError(t, err)
	assert.Empty(t, edges)

	// no dangling adjacency entries
	records, _ := store.Query(ctx, ports.Filter{
		Table:      entities.TableNode,
		Conditions: map[string]interface{}{"id": "node:parent"},
	})
	assert.Empty(t, entities.NodeFromFields(records[0]).Children)
}

func TestGraphStore_MergeMissingRecordErrors(t *testing.T) {
	store := NewGraphStore()
	err := store.MergeRecord(context.Background(), "node:ghost", ports.Record{"title": "x"})
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraphStore_VectorSimilaritySearch(t *testing.T) {
	ctx := context.Background()
	store := NewGraphStore()

	_, err := store.CreateRecord(ctx, entities.TableNode, ports.Record{
		"id": "node:exact", "embedding_gemini": []float32{1, 0, 0},
	})
	require.NoError(t, err)
	_, err = store.CreateRecord(ctx, entities.TableNode, ports.Record{
		"id": "node:close", "embedding_gemini": []float32{0.9, 0.1, 0},
	})
	require.NoError(t, err)
	_, err = store.CreateRecord(ctx, entities.TableNode, ports.Record{
		"id": "node:orthogonal", "embedding_gemini": []float32{0, 1, 0},
	})
	require.NoError(t, err)
	// nodes without the field are skipped
	createNode(t, store, "node:plain", "topic")

	matches, err := store.VectorSimilaritySearch(ctx, "embedding_gemini", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "node:exact", matches[0].Record["id"])
	assert.InDelta(t, 1.0, matches[0].Similarity, 1e-9)
	assert.Equal(t, "node:close", matches[1].Record["id"])
	assert.Greater(t, matches[0].Similarity, matches[1].Similarity)
}
