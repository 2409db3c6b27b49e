package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"nexus-backend/application/services"
	"nexus-backend/pkg/common"
	pkgerrors "nexus-backend/pkg/errors"
	"nexus-backend/pkg/utils"
)

// LinkHandler drives the two-phase linking session
type LinkHandler struct {
	mutations *services.MutationService
	errors    *pkgerrors.ErrorHandler
	logger    *zap.Logger
}

func NewLinkHandler(mutations *services.MutationService, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *LinkHandler {
	return &LinkHandler{
		mutations: mutations,
		errors:    errors,
		logger:    logger,
	}
}

// StartLinkRequest arms a linking session from a source node
type StartLinkRequest struct {
	SourceID string `json:"sourceId" validate:"required"`
	EdgeType string `json:"edgeType" validate:"required"`
}

// Start handles POST /links/start
func (h *LinkHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	if err := h.mutations.StartLink(req.SourceID, req.EdgeType); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"linking": true})
}

// CompleteLinkRequest closes an armed session onto a target node
type CompleteLinkRequest struct {
	TargetID string `json:"targetId" validate:"required"`
}

// Complete handles POST /links/complete
func (h *LinkHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req CompleteLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	edge, err := h.mutations.CompleteLink(r.Context(), req.TargetID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, edge)
}

// Cancel handles POST /links/cancel
func (h *LinkHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.mutations.CancelLink()
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"linking": false})
}

// Status handles GET /links/status
func (h *LinkHandler) Status(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"linking": h.mutations.IsLinking(),
	})
}
