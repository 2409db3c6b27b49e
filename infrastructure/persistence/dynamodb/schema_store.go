package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"nexus-backend/domain/schema"
	pkgerrors "nexus-backend/pkg/errors"
)

// ReplaceSchema persists the whole taxonomy wholesale. The committed
// registry is the unit of consistency, so partial schema writes are never
// exposed to readers of a single item.
func (s *GraphStore) ReplaceSchema(ctx context.Context, archetypes []schema.NodeArchetype, taxonomies []schema.EdgeTaxonomy) error {
	if err := s.putSchemaItem(ctx, pkSchemaArchetypes, archetypes); err != nil {
		return err
	}
	return s.putSchemaItem(ctx, pkSchemaTaxonomies, taxonomies)
}

// LoadSchema reads the persisted taxonomy. A store that was never
// committed to returns empty slices, not an error.
func (s *GraphStore) LoadSchema(ctx context.Context) ([]schema.NodeArchetype, []schema.EdgeTaxonomy, error) {
	var archetypes []schema.NodeArchetype
	if err := s.getSchemaItem(ctx, pkSchemaArchetypes, &archetypes); err != nil {
		return nil, nil, err
	}
	var taxonomies []schema.EdgeTaxonomy
	if err := s.getSchemaItem(ctx, pkSchemaTaxonomies, &taxonomies); err != nil {
		return nil, nil, err
	}
	return archetypes, taxonomies, nil
}

func (s *GraphStore) putSchemaItem(ctx context.Context, pk string, entries interface{}) error {
	av, err := attributevalue.Marshal(entries)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal schema "+pk, err)
	}
	_, err = s.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			attrPK:    &types.AttributeValueMemberS{Value: pk},
			attrSK:    &types.AttributeValueMemberS{Value: skRecord},
			"entries": av,
		},
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("put schema "+pk, err)
	}
	return nil
}

func (s *GraphStore) getSchemaItem(ctx context.Context, pk string, out interface{}) error {
	resp, err := s.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			attrPK: &types.AttributeValueMemberS{Value: pk},
			attrSK: &types.AttributeValueMemberS{Value: skRecord},
		},
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("get schema "+pk, err)
	}
	if resp.Item == nil {
		return nil
	}
	if err := attributevalue.Unmarshal(resp.Item["entries"], out); err != nil {
		return pkgerrors.NewDatabaseError("unmarshal schema "+pk, err)
	}
	return nil
}
