package embedding

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nexus-backend/application/ports"
	"nexus-backend/domain/core/entities"
)

type fakeEmbedder struct {
	name   string
	vector []float32
	err    error
	calls  atomic.Int64
}

func (e *fakeEmbedder) Name() string { return e.name }

func (e *fakeEmbedder) Embed(_ context.Context, _ *entities.Node) ([]float32, error) {
	e.calls.Add(1)
	return e.vector, e.err
}

type mergeCall struct {
	id     string
	fields ports.Record
}

type fakeGraphStore struct {
	mu       sync.Mutex
	merges   []mergeCall
	mergeErr error
}

func (s *fakeGraphStore) CreateRecord(context.Context, string, ports.Record) (string, error) {
	return "", nil
}

func (s *fakeGraphStore) MergeRecord(_ context.Context, id string, fields ports.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mergeErr != nil {
		return s.mergeErr
	}
	s.merges = append(s.merges, mergeCall{id: id, fields: fields})
	return nil
}

func (s *fakeGraphStore) DeleteRecord(context.Context, string) error { return nil }

func (s *fakeGraphStore) Relate(context.Context, string, string, ports.Record) (string, error) {
	return "", nil
}

func (s *fakeGraphStore) Query(context.Context, ports.Filter) ([]ports.Record, error) {
	return nil, nil
}

func (s *fakeGraphStore) VectorSimilaritySearch(context.Context, string, []float32, int) ([]ports.Match, error) {
	return nil, nil
}

func newTestOrchestrator(t *testing.T, store *fakeGraphStore, embedders ...ports.Embedder) *Orchestrator {
	t.Helper()

	available := make(map[Provider]bool)
	for _, e := range embedders {
		available[Provider(e.Name())] = true
	}
	registry := NewRegistry(available, newFakeSettings())
	return NewOrchestrator(NewEvaluator(registry), embedders, store, nil, zap.NewNop())
}

func TestOrchestrator_FreshNodeMakesNoCalls(t *testing.T) {
	store := &fakeGraphStore{}
	gemini := &fakeEmbedder{name: "gemini", vector: []float32{0.1}}
	o := newTestOrchestrator(t, store, gemini)

	node := testNode(t)
	node.Metadata[entities.MetaContentHash] = HashContent(node)

	res, err := o.Reconcile(context.Background(), node)
	require.NoError(t, err)
	assert.False(t, res.Updated)
	assert.Empty(t, res.Providers)
	assert.Empty(t, res.Errors)
	assert.Zero(t, gemini.calls.Load())
	assert.Empty(t, store.merges)
}

func TestOrchestrator_CommitsVectorsAndHashAtomically(t *testing.T) {
	store := &fakeGraphStore{}
	gemini := &fakeEmbedder{name: "gemini", vector: []float32{0.1, 0.2}}
	openai := &fakeEmbedder{name: "openai", vector: []float32{0.3, 0.4}}
	o := newTestOrchestrator(t, store, gemini, openai)

	node := testNode(t)
	res, err := o.Reconcile(context.Background(), node)
	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.ElementsMatch(t, []Provider{ProviderGemini, ProviderOpenAI}, res.Providers)
	assert.Empty(t, res.Errors)

	require.Len(t, store.merges, 1)
	merge := store.merges[0]
	assert.Equal(t, node.ID, merge.id)
	assert.Equal(t, []float32{0.1, 0.2}, merge.fields["embedding_gemini"])
	assert.Equal(t, []float32{0.3, 0.4}, merge.fields["embedding_openai"])

	metadata, ok := merge.fields["metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, HashContent(node), metadata[entities.MetaContentHash])
	assert.NotEmpty(t, metadata[entities.MetaLastEmbedded])
}

func TestOrchestrator_ProviderFailureIsIsolated(t *testing.T) {
	store := &fakeGraphStore{}
	gemini := &fakeEmbedder{name: "gemini", err: errors.New("rate limited")}
	openai := &fakeEmbedder{name: "openai", vector: []float32{0.3}}
	o := newTestOrchestrator(t, store, gemini, openai)

	node := testNode(t)
	res, err := o.Reconcile(context.Background(), node)
	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Equal(t, []Provider{ProviderOpenAI}, res.Providers)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "gemini: rate limited", res.Errors[0])

	require.Len(t, store.merges, 1)
	fields := store.merges[0].fields
	assert.Contains(t, fields, "embedding_openai")
	assert.NotContains(t, fields, "embedding_gemini")
}

func TestOrchestrator_NilVectorIsASkip(t *testing.T) {
	store := &fakeGraphStore{}
	gemini := &fakeEmbedder{name: "gemini", vector: nil}
	o := newTestOrchestrator(t, store, gemini)

	node := testNode(t)
	res, err := o.Reconcile(context.Background(), node)
	require.NoError(t, err)
	assert.False(t, res.Updated)
	assert.Empty(t, res.Errors)
	assert.Empty(t, store.merges)
}

func TestOrchestrator_NoSuccessNoWrite(t *testing.T) {
	store := &fakeGraphStore{}
	gemini := &fakeEmbedder{name: "gemini", err: errors.New("boom")}
	openai := &fakeEmbedder{name: "openai", err: errors.New("also boom")}
	o := newTestOrchestrator(t, store, gemini, openai)

	node := testNode(t)
	res, err := o.Reconcile(context.Background(), node)
	require.NoError(t, err)
	assert.False(t, res.Updated)
	assert.Len(t, res.Errors, 2)
	assert.Empty(t, store.merges)

	// fingerprint unchanged, so the next call retries in full
	res, err = o.Reconcile(context.Background(), node)
	require.NoError(t, err)
	assert.False(t, res.Updated)
	assert.Equal(t, int64(2), gemini.calls.Load())
}

func TestOrchestrator_IdempotentAfterSuccess(t *testing.T) {
	store := &fakeGraphStore{}
	gemini := &fakeEmbedder{name: "gemini", vector: []float32{0.5}}
	o := newTestOrchestrator(t, store, gemini)

	node := testNode(t)
	res, err := o.Reconcile(context.Background(), node)
	require.NoError(t, err)
	assert.True(t, res.Updated)

	res, err = o.Reconcile(context.Background(), node)
	require.NoError(t, err)
	assert.False(t, res.Updated)
	assert.Equal(t, int64(1), gemini.calls.Load())
	assert.Len(t, store.merges, 1)
}

func TestOrchestrator_ReEmbedsAfterEdit(t *testing.T) {
	store := &fakeGraphStore{}
	gemini := &fakeEmbedder{name: "gemini", vector: []float32{0.5}}
	o := newTestOrchestrator(t, store, gemini)

	node := testNode(t)
	_, err := o.Reconcile(context.Background(), node)
	require.NoError(t, err)

	node.Content = "rewritten body"
	res, err := o.Reconcile(context.Background(), node)
	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Len(t, store.merges, 2)
}

func TestOrchestrator_MergeFailurePropagates(t *testing.T) {
	store := &fakeGraphStore{mergeErr: errors.New("conditional check failed")}
	gemini := &fakeEmbedder{name: "gemini", vector: []float32{0.5}}
	o := newTestOrchestrator(t, store, gemini)

	node := testNode(t)
	_, err := o.Reconcile(context.Background(), node)
	assert.Error(t, err)
	assert.Empty(t, node.ContentHash())
}

func TestOrchestrator_PreservesUnrelatedMetadata(t *testing.T) {
	store := &fakeGraphStore{}
	gemini := &fakeEmbedder{name: "gemini", vector: []float32{0.5}}
	o := newTestOrchestrator(t, store, gemini)

	node := testNode(t)
	node.Metadata["pinned"] = true

	_, err := o.Reconcile(context.Background(), node)
	require.NoError(t, err)

	metadata := store.merges[0].fields["metadata"].(map[string]interface{})
	assert.Equal(t, true, metadata["pinned"])
}

func TestOrchestrator_ReconcileAll(t *testing.T) {
	store := &fakeGraphStore{}
	gemini := &fakeEmbedder{name: "gemini", vector: []float32{0.5}}
	o := newTestOrchestrator(t, store, gemini)

	fresh := testNode(t)
	fresh.Metadata[entities.MetaContentHash] = HashContent(fresh)

	stale1 := testNode(t)
	stale1.Title = "First"
	stale2 := testNode(t)
	stale2.Title = "Second"

	result := o.ReconcileAll(context.Background(), []*entities.Node{fresh, stale1, stale2})
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Updated)
	assert.Empty(t, result.Errors)
	assert.Len(t, store.merges, 2)
}
