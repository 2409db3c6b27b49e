// Package rest wires the chi router for the graph API.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"nexus-backend/application/embedding"
	"nexus-backend/application/services"
	"nexus-backend/domain/schema"
	"nexus-backend/infrastructure/config"
	"nexus-backend/interfaces/http/rest/handlers"
	"nexus-backend/interfaces/http/rest/middleware"
	pkgerrors "nexus-backend/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg       *config.Config
	mutations *services.MutationService
	queries   *services.QueryService
	registry  *schema.Registry
	store     schema.Store
	providers *embedding.Registry
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	mutations *services.MutationService,
	queries *services.QueryService,
	registry *schema.Registry,
	store schema.Store,
	providers *embedding.Registry,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:       cfg,
		mutations: mutations,
		queries:   queries,
		registry:  registry,
		store:     store,
		providers: providers,
		logger:    logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	errHandler := pkgerrors.NewErrorHandler(rt.logger, rt.cfg.Environment != "production")

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.cfg.JWTSecret, rt.cfg.JWTIssuer, rt.logger))

		nodeHandler := handlers.NewNodeHandler(rt.mutations, errHandler, rt.logger)
		graphHandler := handlers.NewGraphHandler(rt.mutations, rt.queries, errHandler, rt.logger)
		linkHandler := handlers.NewLinkHandler(rt.mutations, errHandler, rt.logger)
		schemaHandler := handlers.NewSchemaHandler(rt.registry, rt.store, errHandler, rt.logger)
		providerHandler := handlers.NewProviderHandler(rt.providers, errHandler, rt.logger)

		r.Route("/nodes", func(r chi.Router) {
			r.Post("/", nodeHandler.CreateNode)
			r.Get("/{nodeID}", nodeHandler.GetNode)
			r.Put("/{nodeID}", nodeHandler.UpdateNode)
			r.Delete("/{nodeID}", nodeHandler.DeleteNode)
			r.Get("/{nodeID}/similar", graphHandler.SimilarNodes)
		})

		r.Route("/links", func(r chi.Router) {
			r.Post("/start", linkHandler.Start)
			r.Post("/complete", linkHandler.Complete)
			r.Post("/cancel", linkHandler.Cancel)
			r.Get("/status", linkHandler.Status)
		})

		r.Route("/schema", func(r chi.Router) {
			r.Get("/", schemaHandler.Get)
			r.Post("/commit", schemaHandler.Commit)
			r.Post("/archetypes", schemaHandler.AddArchetype)
			r.Put("/archetypes/{nodeType}", schemaHandler.UpdateArchetype)
			r.Delete("/archetypes/{nodeType}", schemaHandler.RemoveArchetype)
			r.Post("/taxonomies", schemaHandler.AddTaxonomy)
			r.Put("/taxonomies/{edgeType}", schemaHandler.UpdateTaxonomy)
			r.Delete("/taxonomies/{edgeType}", schemaHandler.RemoveTaxonomy)
		})

		r.Route("/providers", func(r chi.Router) {
			r.Get("/", providerHandler.List)
			r.Put("/{provider}", providerHandler.Toggle)
		})

		r.Get("/graph-data", graphHandler.GetGraphData)
		r.Post("/bootstrap", graphHandler.Bootstrap)
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
