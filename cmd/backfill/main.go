// Command backfill re-embeds every node whose stored content hash no
// longer matches its content. Run it after bulk imports or after content
// edits that outpaced background reconciliation. Nodes whose hash still
// matches are left alone, even for providers enabled after they were
// last embedded.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"nexus-backend/infrastructure/config"
	"nexus-backend/infrastructure/di"
)

func main() {
	timeout := flag.Duration("timeout", 30*time.Minute, "overall batch deadline")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger
	defer logger.Sync()

	start := time.Now()

	nodes, err := container.Queries.ListNodes(ctx)
	if err != nil {
		logger.Fatal("failed to list nodes", zap.Error(err))
	}
	logger.Info("backfill starting", zap.Int("nodes", len(nodes)))

	result := container.Orchestrator.ReconcileAll(ctx, nodes)
	container.Metrics.RecordReconcileBatch(ctx, result.Total, result.Updated)

	logger.Info("backfill finished",
		zap.Int("total", result.Total),
		zap.Int("updated", result.Updated),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("duration", time.Since(start)),
	)
	if len(result.Errors) > 0 {
		logger.Warn("some nodes failed to embed, rerun to retry them")
	}
}
