package services

import (
	"context"

	"nexus-backend/application/embedding"
	"nexus-backend/application/ports"
	"nexus-backend/domain/core/entities"
	"nexus-backend/domain/schema"
	pkgerrors "nexus-backend/pkg/errors"
)

// GraphData is the full graph payload the renderer consumes: every node and
// edge plus the schema that styles them.
type GraphData struct {
	Nodes      []*entities.Node      `json:"nodes"`
	Edges      []*entities.Edge      `json:"links"`
	Archetypes []schema.NodeArchetype `json:"nodeSchema"`
	Taxonomies []schema.EdgeTaxonomy  `json:"edgeSchema"`
}

// SimilarNode is one vector similarity hit.
type SimilarNode struct {
	Node       *entities.Node `json:"node"`
	Similarity float64        `json:"similarity"`
}

// QueryService serves read paths: full graph fetches and similarity search.
type QueryService struct {
	registry *schema.Registry
	store    ports.GraphStore
}

// NewQueryService wires a query service
func NewQueryService(registry *schema.Registry, store ports.GraphStore) *QueryService {
	return &QueryService{registry: registry, store: store}
}

// GetGraph loads every node and edge together with the current schema. Edge
// endpoints are plain node ids.
func (s *QueryService) GetGraph(ctx context.Context) (*GraphData, error) {
	nodes, err := s.ListNodes(ctx)
	if err != nil {
		return nil, err
	}

	edgeRecords, err := s.store.Query(ctx, ports.Filter{Table: entities.TableEdge})
	if err != nil {
		return nil, err
	}
	edges := make([]*entities.Edge, 0, len(edgeRecords))
	for _, rec := range edgeRecords {
		edges = append(edges, entities.EdgeFromFields(rec))
	}

	return &GraphData{
		Nodes:      nodes,
		Edges:      edges,
		Archetypes: s.registry.Archetypes(),
		Taxonomies: s.registry.Taxonomies(),
	}, nil
}

// ListNodes loads every node
func (s *QueryService) ListNodes(ctx context.Context) ([]*entities.Node, error) {
	records, err := s.store.Query(ctx, ports.Filter{Table: entities.TableNode})
	if err != nil {
		return nil, err
	}
	nodes := make([]*entities.Node, 0, len(records))
	for _, rec := range records {
		nodes = append(nodes, entities.NodeFromFields(rec))
	}
	return nodes, nil
}

// SimilarNodes finds the k nodes nearest to the given node's vector for one
// provider. The node must already have an embedding for that provider.
func (s *QueryService) SimilarNodes(ctx context.Context, node *entities.Node, provider embedding.Provider, k int) ([]SimilarNode, error) {
	if k <= 0 {
		k = 5
	}
	vector := node.Embeddings[string(provider)]
	if len(vector) == 0 {
		return nil, pkgerrors.NewValidationError("node has no embedding for provider " + string(provider))
	}

	matches, err := s.store.VectorSimilaritySearch(ctx, provider.EmbeddingField(), vector, k+1)
	if err != nil {
		return nil, err
	}

	similar := make([]SimilarNode, 0, k)
	for _, match := range matches {
		hit := entities.NodeFromFields(match.Record)
		if hit.ID == node.ID {
			continue
		}
		similar = append(similar, SimilarNode{Node: hit, Similarity: match.Similarity})
		if len(similar) == k {
			break
		}
	}
	return similar, nil
}
