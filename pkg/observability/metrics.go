// Package observability reports operational metrics to CloudWatch.
package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes custom metrics under one namespace. A nil client turns
// every call into a no-op, which local development relies on.
type Metrics struct {
	client    *cloudwatch.Client
	namespace string
	logger    *zap.Logger
}

// NewMetrics creates a metrics publisher
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// RecordEmbedding reports one embedding attempt outcome per provider
func (m *Metrics) RecordEmbedding(ctx context.Context, provider string, success bool) {
	name := "EmbeddingSuccess"
	if !success {
		name = "EmbeddingFailure"
	}
	m.put(ctx, name, 1, []types.Dimension{
		{Name: aws.String("Provider"), Value: aws.String(provider)},
	})
}

// RecordReconcileBatch reports a bulk backfill outcome
func (m *Metrics) RecordReconcileBatch(ctx context.Context, total, updated int) {
	m.put(ctx, "ReconcileTotal", float64(total), nil)
	m.put(ctx, "ReconcileUpdated", float64(updated), nil)
}

func (m *Metrics) put(ctx context.Context, name string, value float64, dimensions []types.Dimension) {
	if m.client == nil {
		return
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       types.StandardUnitCount,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})
	if err != nil {
		m.logger.Warn("metric publish failed",
			zap.String("metric", name),
			zap.Error(err))
	}
}
