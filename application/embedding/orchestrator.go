package embedding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"nexus-backend/application/ports"
	"nexus-backend/domain/core/entities"
)

// Result aggregates one reconcile pass over a node.
type Result struct {
	Updated   bool       `json:"updated"`
	Providers []Provider `json:"providers"`
	Errors    []string   `json:"errors"`
}

// BatchResult aggregates a bulk reconcile pass.
type BatchResult struct {
	Total   int      `json:"total"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// Metrics receives reconcile outcomes. Implementations must be safe for
// concurrent use.
type Metrics interface {
	RecordEmbedding(ctx context.Context, provider string, success bool)
}

// Orchestrator drives embedding recomputation for stale nodes. Provider
// calls run concurrently and are isolated from each other; whatever subset
// succeeds is committed in a single merge together with the new content
// fingerprint, so observers never see an updated hash without its vectors.
type Orchestrator struct {
	evaluator *Evaluator
	embedders map[Provider]ports.Embedder
	store     ports.GraphStore
	metrics   Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrchestrator wires an orchestrator. metrics may be nil.
func NewOrchestrator(
	evaluator *Evaluator,
	embedders []ports.Embedder,
	store ports.GraphStore,
	metrics Metrics,
	logger *zap.Logger,
) *Orchestrator {
	byProvider := make(map[Provider]ports.Embedder, len(embedders))
	for _, e := range embedders {
		byProvider[Provider(e.Name())] = e
	}
	return &Orchestrator{
		evaluator: evaluator,
		embedders: byProvider,
		store:     store,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Reconcile brings a node's embeddings up to date with its content. A node
// whose fingerprint already matches returns immediately with no I/O. When no
// provider succeeds, nothing is written and the stored fingerprint stays
// unchanged, so the next call retries the node in full.
func (o *Orchestrator) Reconcile(ctx context.Context, node *entities.Node) (Result, error) {
	status := o.evaluator.Evaluate(ctx, node)
	if !status.IsStale {
		return Result{Providers: []Provider{}, Errors: []string{}}, nil
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		vectors = make(map[Provider][]float32)
		errs    []string
	)

	for _, provider := range status.StaleProviders {
		embedder, ok := o.embedders[provider]
		if !ok {
			errs = append(errs, fmt.Sprintf("%s: no embedder configured", provider))
			continue
		}

		wg.Add(1)
		go func(provider Provider, embedder ports.Embedder) {
			defer wg.Done()

			vector, err := embedder.Embed(ctx, node)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				errs = append(errs, fmt.Sprintf("%s: %s", provider, err.Error()))
				o.recordOutcome(ctx, provider, false)
			case vector == nil:
				o.recordOutcome(ctx, provider, false)
			default:
				vectors[provider] = vector
				o.recordOutcome(ctx, provider, true)
			}
		}(provider, embedder)
	}
	wg.Wait()

	if len(vectors) == 0 {
		o.logger.Debug("no provider produced a vector",
			zap.String("node_id", node.ID),
			zap.Strings("errors", errs))
		return Result{Providers: []Provider{}, Errors: nonNil(errs)}, nil
	}

	// One atomic merge: every successful vector plus the new fingerprint
	// land together.
	metadata := make(map[string]interface{}, len(node.Metadata)+2)
	for k, v := range node.Metadata {
		metadata[k] = v
	}
	metadata[entities.MetaContentHash] = status.CurrentHash
	metadata[entities.MetaLastEmbedded] = o.now().UTC().Format(time.RFC3339)

	fields := ports.Record{"metadata": metadata}
	providers := make([]Provider, 0, len(vectors))
	for provider, vector := range vectors {
		fields[provider.EmbeddingField()] = vector
		providers = append(providers, provider)
	}

	if err := o.store.MergeRecord(ctx, node.ID, fields); err != nil {
		return Result{Providers: []Provider{}, Errors: nonNil(errs)}, err
	}

	node.Metadata = metadata
	if node.Embeddings == nil {
		node.Embeddings = make(map[string][]float32, len(vectors))
	}
	for provider, vector := range vectors {
		node.Embeddings[string(provider)] = vector
	}

	o.logger.Info("node embeddings reconciled",
		zap.String("node_id", node.ID),
		zap.Int("providers", len(providers)),
		zap.Int("failures", len(errs)))

	return Result{Updated: true, Providers: providers, Errors: nonNil(errs)}, nil
}

// ReconcileAll reconciles every node concurrently and aggregates counts.
// Used for bulk backfill.
func (o *Orchestrator) ReconcileAll(ctx context.Context, nodes []*entities.Node) BatchResult {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = BatchResult{Total: len(nodes), Errors: []string{}}
	)

	for _, node := range nodes {
		wg.Add(1)
		go func(node *entities.Node) {
			defer wg.Done()

			res, err := o.Reconcile(ctx, node)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", node.ID, err.Error()))
				return
			}
			if res.Updated {
				result.Updated++
			}
			result.Errors = append(result.Errors, res.Errors...)
		}(node)
	}
	wg.Wait()

	return result
}

func (o *Orchestrator) recordOutcome(ctx context.Context, provider Provider, success bool) {
	if o.metrics != nil {
		o.metrics.RecordEmbedding(ctx, string(provider), success)
	}
}

func nonNil(errs []string) []string {
	if errs == nil {
		return []string{}
	}
	return errs
}
