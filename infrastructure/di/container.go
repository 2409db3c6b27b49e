package di

import (
	"net/http"

	"go.uber.org/zap"

	appembedding "nexus-backend/application/embedding"
	"nexus-backend/application/ports"
	"nexus-backend/application/services"
	"nexus-backend/domain/schema"
	"nexus-backend/infrastructure/config"
	"nexus-backend/infrastructure/persistence/dynamodb"
	"nexus-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *zap.Logger
	GraphStore       *dynamodb.GraphStore
	SettingsStore    ports.SettingsStore
	SchemaRegistry   *schema.Registry
	ProviderRegistry *appembedding.Registry
	Orchestrator     *appembedding.Orchestrator
	Mutations        *services.MutationService
	Queries          *services.QueryService
	Metrics          *observability.Metrics
	Router           http.Handler
}
