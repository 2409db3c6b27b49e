package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"nexus-backend/application/embedding"
	"nexus-backend/pkg/common"
	pkgerrors "nexus-backend/pkg/errors"
)

// ProviderHandler exposes embedding provider availability and toggles
type ProviderHandler struct {
	registry *embedding.Registry
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

func NewProviderHandler(registry *embedding.Registry, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{
		registry: registry,
		errors:   errors,
		logger:   logger,
	}
}

// ProviderStatus is one provider's configuration as seen by the UI
type ProviderStatus struct {
	Provider  embedding.Provider `json:"provider"`
	Available bool               `json:"available"`
	Enabled   bool               `json:"enabled"`
}

// List handles GET /providers
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses := make([]ProviderStatus, 0, len(embedding.AllProviders))
	for _, provider := range embedding.AllProviders {
		cfg := h.registry.Configuration(r.Context(), provider)
		statuses = append(statuses, ProviderStatus{
			Provider:  provider,
			Available: cfg.Available,
			Enabled:   cfg.Enabled,
		})
	}
	common.RespondJSON(w, http.StatusOK, statuses)
}

// ToggleRequest flips a provider on or off
type ToggleRequest struct {
	Enabled bool `json:"enabled"`
}

// Toggle handles PUT /providers/{provider}
func (h *ProviderHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	provider := embedding.Provider(chi.URLParam(r, "provider"))

	known := false
	for _, p := range embedding.AllProviders {
		if p == provider {
			known = true
			break
		}
	}
	if !known {
		common.RespondError(w, http.StatusNotFound, "UNKNOWN_PROVIDER", "Unknown embedding provider: "+string(provider))
		return
	}

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}

	if err := h.registry.SetEnabled(r.Context(), provider, req.Enabled); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	cfg := h.registry.Configuration(r.Context(), provider)
	common.RespondJSON(w, http.StatusOK, ProviderStatus{
		Provider:  provider,
		Available: cfg.Available,
		Enabled:   cfg.Enabled,
	})
}
