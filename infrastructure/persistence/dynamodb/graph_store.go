// Package dynamodb implements the GraphStore port on a single DynamoDB
// table. Records are keyed by their id; a GSI over the record_table
// attribute serves whole-table scans for graph fetches and similarity
// search.
package dynamodb

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"nexus-backend/application/ports"
	"nexus-backend/domain/core/entities"
	"nexus-backend/domain/schema"
	pkgerrors "nexus-backend/pkg/errors"
)

const (
	attrPK    = "PK"
	attrSK    = "SK"
	attrTable = "record_table"

	skRecord = "RECORD"

	pkSchemaArchetypes = "schema:archetypes"
	pkSchemaTaxonomies = "schema:taxonomies"
)

// GraphStore is the DynamoDB-backed graph database.
type GraphStore struct {
	client    *awsdynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewGraphStore creates a DynamoDB graph store. indexName is the GSI keyed
// by record_table.
func NewGraphStore(client *awsdynamodb.Client, tableName, indexName string, logger *zap.Logger) *GraphStore {
	return &GraphStore{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// CreateRecord persists a new record, refusing to overwrite an existing id
func (s *GraphStore) CreateRecord(ctx context.Context, table string, fields ports.Record) (string, error) {
	id, _ := fields["id"].(string)
	if id == "" {
		return "", pkgerrors.NewValidationError("record id is required")
	}

	item, err := attributevalue.MarshalMap(map[string]interface{}(fields))
	if err != nil {
		return "", pkgerrors.NewDatabaseError("marshal record", err)
	}
	item[attrPK] = &types.AttributeValueMemberS{Value: id}
	item[attrSK] = &types.AttributeValueMemberS{Value: skRecord}
	item[attrTable] = &types.AttributeValueMemberS{Value: table}

	_, err = s.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return "", pkgerrors.NewConflictError("record already exists: " + id)
		}
		return "", pkgerrors.NewDatabaseError("create record", err)
	}
	return id, nil
}

// MergeRecord applies a field-wise partial update to an existing record.
// Merging against a deleted id fails with a not-found error; a late
// embedding commit for a removed node ends here, harmlessly.
func (s *GraphStore) MergeRecord(ctx context.Context, id string, fields ports.Record) error {
	if len(fields) == 0 {
		return nil
	}

	update := expression.UpdateBuilder{}
	for key, value := range fields {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return pkgerrors.NewDatabaseError("marshal field "+key, err)
		}
		update = update.Set(expression.Name(key), expression.Value(av))
	}
	cond := expression.AttributeExists(expression.Name(attrPK))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return pkgerrors.NewDatabaseError("build merge expression", err)
	}

	_, err = s.client.UpdateItem(ctx, &awsdynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       recordKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return pkgerrors.NewNotFoundError("record " + id)
		}
		return pkgerrors.NewDatabaseError("merge record", err)
	}
	return nil
}

// DeleteRecord removes a record. Node deletion cascades: every edge
// referencing the node goes with it and the node is scrubbed from its
// neighbors' adjacency lists.
func (s *GraphStore) DeleteRecord(ctx context.Context, id string) error {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return err
	}

	if record[attrTable] == entities.TableNode {
		if err := s.cascadeNodeDeletion(ctx, id); err != nil {
			return err
		}
	}

	_, err = s.client.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       recordKey(id),
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("delete record", err)
	}
	return nil
}

// Relate creates an edge record and maintains adjacency. For child and sub
// natures the source is the subordinate node.
func (s *GraphStore) Relate(ctx context.Context, sourceID, targetID string, edgeFields ports.Record) (string, error) {
	if _, err := s.getRecord(ctx, sourceID); err != nil {
		return "", err
	}
	if _, err := s.getRecord(ctx, targetID); err != nil {
		return "", err
	}

	fields := make(ports.Record, len(edgeFields)+2)
	for k, v := range edgeFields {
		fields[k] = v
	}
	fields["source"] = sourceID
	fields["target"] = targetID

	id, err := s.CreateRecord(ctx, entities.TableEdge, fields)
	if err != nil {
		return "", err
	}

	switch fields["nature"] {
	case string(schema.EdgeNatureChild):
		if err := s.adjustAdjacency(ctx, targetID, "children", sourceID, true); err != nil {
			return "", err
		}
		if err := s.adjustAdjacency(ctx, sourceID, "parents", targetID, true); err != nil {
			return "", err
		}
	case string(schema.EdgeNatureSub):
		if err := s.adjustAdjacency(ctx, targetID, "subnodes", sourceID, true); err != nil {
			return "", err
		}
		if err := s.adjustAdjacency(ctx, sourceID, "parents", targetID, true); err != nil {
			return "", err
		}
	}
	return id, nil
}

// Query returns all records matching the filter. An id condition becomes a
// point read; everything else queries the table GSI.
func (s *GraphStore) Query(ctx context.Context, filter ports.Filter) ([]ports.Record, error) {
	if id, ok := filter.Conditions["id"].(string); ok {
		record, err := s.getRecord(ctx, id)
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		return []ports.Record{record}, nil
	}
	return s.queryTable(ctx, filter.Table, filter.Conditions)
}

// VectorSimilaritySearch ranks nodes by cosine similarity on the named
// embedding field. DynamoDB has no vector index, so candidate vectors are
// ranked here, most similar first.
func (s *GraphStore) VectorSimilaritySearch(ctx context.Context, field string, query []float32, k int) ([]ports.Match, error) {
	if len(query) == 0 {
		return nil, pkgerrors.NewValidationError("query vector cannot be empty")
	}

	records, err := s.queryTable(ctx, entities.TableNode, nil)
	if err != nil {
		return nil, err
	}

	var matches []ports.Match
	for _, record := range records {
		vector := vectorFrom(record[field])
		if len(vector) != len(query) {
			continue
		}
		matches = append(matches, ports.Match{
			Record:     record,
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

func (s *GraphStore) getRecord(ctx context.Context, id string) (ports.Record, error) {
	out, err := s.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       recordKey(id),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get record", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("record " + id)
	}
	return unmarshalRecord(out.Item)
}

func (s *GraphStore) queryTable(ctx context.Context, table string, conditions map[string]interface{}) ([]ports.Record, error) {
	keyCond := expression.Key(attrTable).Equal(expression.Value(table))
	builder := expression.NewBuilder().WithKeyCondition(keyCond)

	if len(conditions) > 0 {
		var filter expression.ConditionBuilder
		first := true
		for key, value := range conditions {
			cond := expression.Name(key).Equal(expression.Value(value))
			if first {
				filter = cond
				first = false
			} else {
				filter = filter.And(cond)
			}
		}
		builder = builder.WithFilter(filter)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build query expression", err)
	}

	var records []ports.Record
	var lastKey map[string]types.AttributeValue
	for {
		out, err := s.client.Query(ctx, &awsdynamodb.QueryInput{
			TableName:                 aws.String(s.tableName),
			IndexName:                 aws.String(s.indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query table "+table, err)
		}
		for _, item := range out.Items {
			record, err := unmarshalRecord(item)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return records, nil
}

func (s *GraphStore) cascadeNodeDeletion(ctx context.Context, nodeID string) error {
	edges, err := s.queryTable(ctx, entities.TableEdge, nil)
	if err != nil {
		return err
	}

	for _, edge := range edges {
		source, _ := edge["source"].(string)
		target, _ := edge["target"].(string)
		if source != nodeID && target != nodeID {
			continue
		}

		edgeID, _ := edge["id"].(string)
		if _, err := s.client.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
			TableName: aws.String(s.tableName),
			Key:       recordKey(edgeID),
		}); err != nil {
			return pkgerrors.NewDatabaseError("delete edge "+edgeID, err)
		}

		other := source
		if source == nodeID {
			other = target
		}
		for _, field := range []string{"parents", "children", "subnodes"} {
			if err := s.adjustAdjacency(ctx, other, field, nodeID, false); err != nil && !pkgerrors.IsNotFound(err) {
				return err
			}
		}
	}
	return nil
}

// adjustAdjacency adds or removes an id in one adjacency list via
// read-modify-write. Adjacency writes are rare and single-writer per
// session, so a transactional update is not needed.
func (s *GraphStore) adjustAdjacency(ctx context.Context, nodeID, field, value string, add bool) error {
	record, err := s.getRecord(ctx, nodeID)
	if err != nil {
		return err
	}

	current := stringsFrom(record[field])
	var next []string
	if add {
		for _, v := range current {
			if v == value {
				return nil
			}
		}
		next = append(current, value)
	} else {
		for _, v := range current {
			if v != value {
				next = append(next, v)
			}
		}
		if len(next) == len(current) {
			return nil
		}
	}
	return s.MergeRecord(ctx, nodeID, ports.Record{field: next})
}

func recordKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: id},
		attrSK: &types.AttributeValueMemberS{Value: skRecord},
	}
}

func unmarshalRecord(item map[string]types.AttributeValue) (ports.Record, error) {
	var record map[string]interface{}
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal record", err)
	}
	delete(record, attrPK)
	delete(record, attrSK)
	return record, nil
}

func stringsFrom(v interface{}) []string {
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

func vectorFrom(v interface{}) []float32 {
	switch vec := v.(type) {
	case []float32:
		return vec
	case []float64:
		out := make([]float32, len(vec))
		for i, f := range vec {
			out[i] = float32(f)
		}
		return out
	case []interface{}:
		out := make([]float32, 0, len(vec))
		for _, item := range vec {
			switch n := item.(type) {
			case float64:
				out = append(out, float32(n))
			case float32:
				out = append(out, n)
			}
		}
		if len(out) == 0 {
			return nil
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
