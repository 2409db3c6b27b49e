// Package handlers contains the HTTP request handlers for the graph API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"nexus-backend/application/services"
	"nexus-backend/domain/core/entities"
	"nexus-backend/pkg/common"
	pkgerrors "nexus-backend/pkg/errors"
	"nexus-backend/pkg/utils"
)

// NodeHandler handles node lifecycle requests
type NodeHandler struct {
	mutations *services.MutationService
	errors    *pkgerrors.ErrorHandler
	logger    *zap.Logger
}

func NewNodeHandler(mutations *services.MutationService, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{
		mutations: mutations,
		errors:    errors,
		logger:    logger,
	}
}

// CreateNodeRequest represents the request body for creating a node
type CreateNodeRequest struct {
	Type     string `json:"type" validate:"required"`
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Summary  string `json:"summary,omitempty"`
	Content  string `json:"content,omitempty"`
	ParentID string `json:"parentId" validate:"required"`
	EdgeType string `json:"edgeType,omitempty"`
}

// CreateNodeResponse carries the created node together with its parent edge
type CreateNodeResponse struct {
	Node *entities.Node `json:"node"`
	Edge *entities.Edge `json:"edge"`
}

// CreateNode handles POST /nodes
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	node, edge, err := h.mutations.CreateNode(r.Context(), services.CreateNodeInput{
		Type:     req.Type,
		Title:    req.Title,
		Summary:  req.Summary,
		Content:  req.Content,
		ParentID: req.ParentID,
		EdgeType: req.EdgeType,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateNodeResponse{Node: node, Edge: edge})
}

// UpdateNodeRequest represents the request body for editing a node
type UpdateNodeRequest struct {
	Title   *string              `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Summary *string              `json:"summary,omitempty"`
	Content *string              `json:"content,omitempty"`
	Media   []entities.MediaItem `json:"media,omitempty"`
}

// UpdateNode handles PUT /nodes/{nodeID}
func (h *NodeHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if nodeID == "" {
		common.RespondError(w, http.StatusBadRequest, "MISSING_ID", "Node ID is required")
		return
	}

	var req UpdateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	node, err := h.mutations.EditNode(r.Context(), services.EditNodeInput{
		ID:      nodeID,
		Title:   req.Title,
		Summary: req.Summary,
		Content: req.Content,
		Media:   req.Media,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, node)
}

// GetNode handles GET /nodes/{nodeID}
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if nodeID == "" {
		common.RespondError(w, http.StatusBadRequest, "MISSING_ID", "Node ID is required")
		return
	}

	node, err := h.mutations.GetNode(r.Context(), nodeID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, node)
}

// DeleteNode handles DELETE /nodes/{nodeID}
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if nodeID == "" {
		common.RespondError(w, http.StatusBadRequest, "MISSING_ID", "Node ID is required")
		return
	}

	if err := h.mutations.DeleteNode(r.Context(), nodeID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
