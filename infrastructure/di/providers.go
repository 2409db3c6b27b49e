// Package di wires the application dependency graph with Google Wire.
package di

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	appembedding "nexus-backend/application/embedding"
	"nexus-backend/application/ports"
	"nexus-backend/application/services"
	"nexus-backend/domain/layout"
	"nexus-backend/domain/schema"
	"nexus-backend/infrastructure/config"
	infraembedding "nexus-backend/infrastructure/embedding"
	"nexus-backend/infrastructure/media"
	"nexus-backend/infrastructure/messaging/eventbridge"
	"nexus-backend/infrastructure/persistence/dynamodb"
	"nexus-backend/interfaces/http/rest"
	"nexus-backend/pkg/observability"
)

// ProvideLogger creates the process-wide logger
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideGraphStore creates the DynamoDB graph store
func ProvideGraphStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) *dynamodb.GraphStore {
	return dynamodb.NewGraphStore(client, cfg.DynamoDBTable, cfg.NodeIndexName, logger)
}

// ProvideSettingsStore creates the DynamoDB settings store
func ProvideSettingsStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.SettingsStore {
	return dynamodb.NewSettingsStore(client, cfg.DynamoDBTable, logger)
}

// ProvideSchemaRegistry loads the persisted schema, falling back to the
// built-in defaults when the store has never been committed to.
func ProvideSchemaRegistry(ctx context.Context, store *dynamodb.GraphStore, logger *zap.Logger) (*schema.Registry, error) {
	archetypes, _, err := store.LoadSchema(ctx)
	if err != nil {
		return nil, err
	}
	if len(archetypes) == 0 {
		logger.Info("no persisted schema, using defaults")
		return schema.NewDefaultRegistry(), nil
	}

	registry := schema.NewRegistry()
	if err := registry.Load(ctx, store); err != nil {
		return nil, err
	}
	return registry, nil
}

// ProvideMediaStore creates the S3 media store, or nil when no bucket is
// configured. Embedders treat a nil store as text-only.
func ProvideMediaStore(awsCfg aws.Config, cfg *config.Config, logger *zap.Logger) ports.MediaStore {
	if cfg.MediaBucket == "" {
		return nil
	}
	return media.NewS3MediaStore(awsCfg, cfg.MediaBucket, cfg.MediaEndpoint, cfg.MediaBaseURL, logger)
}

// ProvideProviderRegistry derives provider availability from configured
// API keys
func ProvideProviderRegistry(cfg *config.Config, settings ports.SettingsStore) *appembedding.Registry {
	return appembedding.NewRegistry(map[appembedding.Provider]bool{
		appembedding.ProviderGemini: cfg.GeminiAPIKey != "",
		appembedding.ProviderOpenAI: cfg.OpenAIAPIKey != "",
		appembedding.ProviderVoyage: cfg.VoyageAPIKey != "",
	}, settings)
}

// ProvideEmbedders constructs an adapter per configured provider. A
// provider without an API key gets no adapter and stays unavailable.
func ProvideEmbedders(ctx context.Context, cfg *config.Config, mediaStore ports.MediaStore, logger *zap.Logger) ([]ports.Embedder, error) {
	var embedders []ports.Embedder

	if cfg.GeminiAPIKey != "" {
		gemini, err := infraembedding.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.GeminiEmbeddingModel, logger)
		if err != nil {
			return nil, err
		}
		embedders = append(embedders, gemini)
	}
	if cfg.OpenAIAPIKey != "" {
		openai, err := infraembedding.NewOpenAIEmbedder(ctx, cfg.OpenAIAPIKey, cfg.OpenAIEmbeddingModel, logger)
		if err != nil {
			return nil, err
		}
		embedders = append(embedders, openai)
	}
	if cfg.VoyageAPIKey != "" {
		voyage, err := infraembedding.NewVoyageEmbedder(cfg.VoyageAPIKey, cfg.VoyageEmbeddingModel, mediaStore, logger)
		if err != nil {
			return nil, err
		}
		embedders = append(embedders, voyage)
	}
	return embedders, nil
}

// ProvideEvaluator creates the staleness evaluator
func ProvideEvaluator(registry *appembedding.Registry) *appembedding.Evaluator {
	return appembedding.NewEvaluator(registry)
}

// ProvideMetrics creates the CloudWatch metrics sink. Disabled metrics get
// a no-op sink rather than a nil dependency.
func ProvideMetrics(awsCfg aws.Config, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	var client *awscloudwatch.Client
	if cfg.EnableMetrics {
		client = awscloudwatch.NewFromConfig(awsCfg)
	}
	return observability.NewMetrics("NexusBackend", client, logger)
}

// ProvideOrchestrator creates the embedding orchestrator
func ProvideOrchestrator(
	evaluator *appembedding.Evaluator,
	embedders []ports.Embedder,
	store *dynamodb.GraphStore,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *appembedding.Orchestrator {
	return appembedding.NewOrchestrator(evaluator, embedders, store, metrics, logger)
}

// ProvideEventPublisher creates the EventBridge publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvidePositioner creates the layout positioner
func ProvidePositioner() *layout.Positioner {
	return layout.NewPositioner(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// ProvideMutationService creates the graph mutation coordinator
func ProvideMutationService(
	registry *schema.Registry,
	positioner *layout.Positioner,
	store *dynamodb.GraphStore,
	orchestrator *appembedding.Orchestrator,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.MutationService {
	return services.NewMutationService(registry, positioner, store, store, orchestrator, publisher, logger)
}

// ProvideQueryService creates the graph query service
func ProvideQueryService(registry *schema.Registry, store *dynamodb.GraphStore) *services.QueryService {
	return services.NewQueryService(registry, store)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	mutations *services.MutationService,
	queries *services.QueryService,
	registry *schema.Registry,
	store *dynamodb.GraphStore,
	providers *appembedding.Registry,
	logger *zap.Logger,
) http.Handler {
	return rest.NewRouter(cfg, mutations, queries, registry, store, providers, logger).Setup()
}
