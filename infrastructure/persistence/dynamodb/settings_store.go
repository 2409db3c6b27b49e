package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	pkgerrors "nexus-backend/pkg/errors"
)

const settingsPrefix = "settings:"

// SettingsStore keeps key-value settings alongside the graph records.
type SettingsStore struct {
	client    *awsdynamodb.Client
	tableName string
	logger    *zap.Logger
}

func NewSettingsStore(client *awsdynamodb.Client, tableName string, logger *zap.Logger) *SettingsStore {
	return &SettingsStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

func (s *SettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := s.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       recordKey(settingsPrefix + key),
	})
	if err != nil {
		return "", false, pkgerrors.NewDatabaseError("get setting "+key, err)
	}
	if out.Item == nil {
		return "", false, nil
	}
	value, ok := out.Item["value"].(*types.AttributeValueMemberS)
	if !ok {
		return "", false, nil
	}
	return value.Value, true, nil
}

func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	item := recordKey(settingsPrefix + key)
	item["value"] = &types.AttributeValueMemberS{Value: value}
	_, err := s.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("set setting "+key, err)
	}
	return nil
}
