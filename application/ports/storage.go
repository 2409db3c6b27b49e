// Package ports defines the interfaces between the application layer and
// infrastructure. Implementations live under infrastructure/.
package ports

import (
	"context"
)

// Record is the loosely-typed shape records cross the storage boundary in.
// Entities are validated into their typed form at the application boundary.
type Record map[string]interface{}

// Filter narrows a Query to one table with equality conditions.
type Filter struct {
	Table      string
	Conditions map[string]interface{}
}

// Match is one vector similarity hit.
type Match struct {
	Record     Record
	Similarity float64
}

// GraphStore is the graph database capability. The application never assumes
// a specific query language, only these six operations.
//
// Relate and DeleteRecord own adjacency maintenance: relating two nodes
// updates their parents/children/subnodes lists, deleting a node removes
// every edge referencing it. MergeRecord against a deleted id must be a
// no-op or an error, never a crash.
type GraphStore interface {
	// CreateRecord persists a new record and returns its id.
	CreateRecord(ctx context.Context, table string, fields Record) (string, error)

	// MergeRecord applies a partial field-wise update to an existing record.
	MergeRecord(ctx context.Context, id string, fields Record) error

	// DeleteRecord removes a record and cascades edge removal for nodes.
	DeleteRecord(ctx context.Context, id string) error

	// Relate creates an edge record between two nodes and returns its id.
	Relate(ctx context.Context, sourceID, targetID string, edgeFields Record) (string, error)

	// Query returns all records matching the filter.
	Query(ctx context.Context, filter Filter) ([]Record, error)

	// VectorSimilaritySearch returns the k records nearest to the query
	// vector on the named embedding field, most similar first.
	VectorSimilaritySearch(ctx context.Context, field string, query []float32, k int) ([]Match, error)
}
