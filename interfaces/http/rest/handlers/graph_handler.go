package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"nexus-backend/application/embedding"
	"nexus-backend/application/services"
	"nexus-backend/pkg/common"
	pkgerrors "nexus-backend/pkg/errors"
	"nexus-backend/pkg/utils"
)

// GraphHandler serves whole-graph reads and similarity search
type GraphHandler struct {
	mutations *services.MutationService
	queries   *services.QueryService
	errors    *pkgerrors.ErrorHandler
	logger    *zap.Logger
}

func NewGraphHandler(mutations *services.MutationService, queries *services.QueryService, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		mutations: mutations,
		queries:   queries,
		errors:    errors,
		logger:    logger,
	}
}

// GetGraphData handles GET /graph-data
func (h *GraphHandler) GetGraphData(w http.ResponseWriter, r *http.Request) {
	data, err := h.queries.GetGraph(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, data)
}

// SimilarNodes handles GET /nodes/{nodeID}/similar?provider=gemini&k=5
func (h *GraphHandler) SimilarNodes(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if nodeID == "" {
		common.RespondError(w, http.StatusBadRequest, "MISSING_ID", "Node ID is required")
		return
	}

	provider := embedding.Provider(r.URL.Query().Get("provider"))
	if provider == "" {
		provider = embedding.ProviderGemini
	}
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))

	node, err := h.mutations.GetNode(r.Context(), nodeID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	matches, err := h.queries.SimilarNodes(r.Context(), node, provider, k)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, matches)
}

// BootstrapRequest names the project to initialize
type BootstrapRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// Bootstrap handles POST /bootstrap. It commits the default schema and
// creates the protected root node.
func (h *GraphHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	var req BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	root, err := h.mutations.BootstrapProject(r.Context(), req.Title)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, root)
}
