// Package memory provides in-memory implementations of the storage ports
// for tests and local development.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"nexus-backend/application/ports"
	"nexus-backend/domain/core/entities"
	"nexus-backend/domain/schema"
	pkgerrors "nexus-backend/pkg/errors"
)

// GraphStore is an in-memory graph database. It maintains adjacency lists on
// relate and cascades edge removal on delete, the same contract the DynamoDB
// store honors.
type GraphStore struct {
	mu         sync.RWMutex
	tables     map[string]map[string]ports.Record
	archetypes []schema.NodeArchetype
	taxonomies []schema.EdgeTaxonomy
}

// NewGraphStore creates an empty in-memory store
func NewGraphStore() *GraphStore {
	return &GraphStore{
		tables: map[string]map[string]ports.Record{
			entities.TableNode: {},
			entities.TableEdge: {},
		},
	}
}

// CreateRecord persists a new record under its table
func (s *GraphStore) CreateRecord(_ context.Context, table string, fields ports.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, _ := fields["id"].(string)
	if id == "" {
		id = table + ":" + uuid.New().String()
	}

	records, ok := s.tables[table]
	if !ok {
		records = make(map[string]ports.Record)
		s.tables[table] = records
	}
	if _, exists := records[id]; exists {
		return "", pkgerrors.NewConflictError("record already exists: " + id)
	}

	record := copyRecord(fields)
	record["id"] = id
	records[id] = record
	return id, nil
}

// MergeRecord applies a field-wise partial update. Merging against a missing
// id is an error, never a crash; late embedding commits for deleted nodes
// land here.
func (s *GraphStore) MergeRecord(_ context.Context, id string, fields ports.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.find(id)
	if record == nil {
		return pkgerrors.NewNotFoundError("record " + id)
	}
	for k, v := range fields {
		record[k] = v
	}
	return nil
}

// DeleteRecord removes a record. Deleting a node also removes every edge
// referencing it and scrubs it from other nodes' adjacency lists.
func (s *GraphStore) DeleteRecord(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found bool
	for _, records := range s.tables {
		if _, ok := records[id]; ok {
			delete(records, id)
			found = true
			break
		}
	}
	if !found {
		return pkgerrors.NewNotFoundError("record " + id)
	}

	edges := s.tables[entities.TableEdge]
	for edgeID, edge := range edges {
		if edge["source"] == id || edge["target"] == id {
			delete(edges, edgeID)
		}
	}
	for _, node := range s.tables[entities.TableNode] {
		for _, key := range []string{"parents", "children", "subnodes"} {
			node[key] = removeString(asStrings(node[key]), id)
		}
	}
	return nil
}

// Relate creates an edge record and maintains adjacency. For child and sub
// natures the source is the subordinate node: the target gains it as a child
// or subnode and the source gains the target as a parent. Links carry no
// structural adjacency.
func (s *GraphStore) Relate(_ context.Context, sourceID, targetID string, edgeFields ports.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.tables[entities.TableNode][sourceID]
	if !ok {
		return "", pkgerrors.NewNotFoundError("node " + sourceID)
	}
	target, ok := s.tables[entities.TableNode][targetID]
	if !ok {
		return "", pkgerrors.NewNotFoundError("node " + targetID)
	}

	id, _ := edgeFields["id"].(string)
	if id == "" {
		id = "edge:" + uuid.New().String()
	}
	edge := copyRecord(edgeFields)
	edge["id"] = id
	edge["source"] = sourceID
	edge["target"] = targetID
	s.tables[entities.TableEdge][id] = edge

	switch edge["nature"] {
	case string(schema.EdgeNatureChild):
		target["children"] = appendUnique(asStrings(target["children"]), sourceID)
		source["parents"] = appendUnique(asStrings(source["parents"]), targetID)
	case string(schema.EdgeNatureSub):
		target["subnodes"] = appendUnique(asStrings(target["subnodes"]), sourceID)
		source["parents"] = appendUnique(asStrings(source["parents"]), targetID)
	}
	return id, nil
}

// Query returns all records of a table matching the filter's equality
// conditions
func (s *GraphStore) Query(_ context.Context, filter ports.Filter) ([]ports.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ports.Record
	for _, record := range s.tables[filter.Table] {
		if matchesConditions(record, filter.Conditions) {
			out = append(out, copyRecord(record))
		}
	}
	return out, nil
}

// VectorSimilaritySearch ranks nodes by cosine similarity on the named
// embedding field, most similar first
func (s *GraphStore) VectorSimilaritySearch(_ context.Context, field string, query []float32, k int) ([]ports.Match, error) {
	if len(query) == 0 {
		return nil, pkgerrors.NewValidationError("query vector cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []ports.Match
	for _, record := range s.tables[entities.TableNode] {
		vector := asVector(record[field])
		if len(vector) != len(query) {
			continue
		}
		matches = append(matches, ports.Match{
			Record:     copyRecord(record),
			Similarity: cosineSimilarity(query, vector),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// ReplaceSchema swaps the stored schema collections wholesale
func (s *GraphStore) ReplaceSchema(_ context.Context, archetypes []schema.NodeArchetype, taxonomies []schema.EdgeTaxonomy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.archetypes = append([]schema.NodeArchetype(nil), archetypes...)
	s.taxonomies = append([]schema.EdgeTaxonomy(nil), taxonomies...)
	return nil
}

// LoadSchema returns the stored schema collections
func (s *GraphStore) LoadSchema(_ context.Context) ([]schema.NodeArchetype, []schema.EdgeTaxonomy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]schema.NodeArchetype(nil), s.archetypes...),
		append([]schema.EdgeTaxonomy(nil), s.taxonomies...), nil
}

func (s *GraphStore) find(id string) ports.Record {
	for _, records := range s.tables {
		if record, ok := records[id]; ok {
			return record
		}
	}
	return nil
}

func matchesConditions(record ports.Record, conditions map[string]interface{}) bool {
	for key, want := range conditions {
		if record[key] != want {
			return false
		}
	}
	return true
}

func copyRecord(in ports.Record) ports.Record {
	out := make(ports.Record, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func appendUnique(set []string, v string) []string {
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}

func removeString(set []string, v string) []string {
	out := set[:0]
	for _, s := range set {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

func asStrings(v interface{}) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []interface{}:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func asVector(v interface{}) []float32 {
	switch vec := v.(type) {
	case []float32:
		return vec
	case []float64:
		out := make([]float32, len(vec))
		for i, f := range vec {
			out[i] = float32(f)
		}
		return out
	}
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
