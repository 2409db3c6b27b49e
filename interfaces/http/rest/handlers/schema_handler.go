package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"nexus-backend/domain/schema"
	"nexus-backend/pkg/common"
	pkgerrors "nexus-backend/pkg/errors"
)

// SchemaHandler exposes the node and edge taxonomy for editing. Mutations
// act on the in-memory registry; Commit persists the whole schema.
type SchemaHandler struct {
	registry *schema.Registry
	store    schema.Store
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

func NewSchemaHandler(registry *schema.Registry, store schema.Store, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *SchemaHandler {
	return &SchemaHandler{
		registry: registry,
		store:    store,
		errors:   errors,
		logger:   logger,
	}
}

// SchemaResponse is the full taxonomy snapshot
type SchemaResponse struct {
	Archetypes []schema.NodeArchetype `json:"nodeSchema"`
	Taxonomies []schema.EdgeTaxonomy  `json:"edgeSchema"`
}

// Get handles GET /schema
func (h *SchemaHandler) Get(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, SchemaResponse{
		Archetypes: h.registry.Archetypes(),
		Taxonomies: h.registry.Taxonomies(),
	})
}

// AddArchetype handles POST /schema/archetypes
func (h *SchemaHandler) AddArchetype(w http.ResponseWriter, r *http.Request) {
	var arch schema.NodeArchetype
	if err := json.NewDecoder(r.Body).Decode(&arch); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := h.registry.AddArchetype(arch); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, arch)
}

// UpdateArchetype handles PUT /schema/archetypes/{nodeType}
func (h *SchemaHandler) UpdateArchetype(w http.ResponseWriter, r *http.Request) {
	nodeType := chi.URLParam(r, "nodeType")

	var arch schema.NodeArchetype
	if err := json.NewDecoder(r.Body).Decode(&arch); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	arch.Type = nodeType
	if err := h.registry.UpdateArchetype(arch); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, arch)
}

// RemoveArchetype handles DELETE /schema/archetypes/{nodeType}
func (h *SchemaHandler) RemoveArchetype(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.RemoveArchetype(chi.URLParam(r, "nodeType")); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddTaxonomy handles POST /schema/taxonomies
func (h *SchemaHandler) AddTaxonomy(w http.ResponseWriter, r *http.Request) {
	var tax schema.EdgeTaxonomy
	if err := json.NewDecoder(r.Body).Decode(&tax); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := h.registry.AddTaxonomy(tax); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, tax)
}

// UpdateTaxonomy handles PUT /schema/taxonomies/{edgeType}
func (h *SchemaHandler) UpdateTaxonomy(w http.ResponseWriter, r *http.Request) {
	edgeType := chi.URLParam(r, "edgeType")

	var tax schema.EdgeTaxonomy
	if err := json.NewDecoder(r.Body).Decode(&tax); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := h.registry.UpdateTaxonomy(edgeType, tax); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, tax)
}

// RemoveTaxonomy handles DELETE /schema/taxonomies/{edgeType}
func (h *SchemaHandler) RemoveTaxonomy(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.RemoveTaxonomy(chi.URLParam(r, "edgeType")); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Commit handles POST /schema/commit
func (h *SchemaHandler) Commit(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Commit(r.Context(), h.store); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.logger.Info("schema committed")
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"committed": true})
}
