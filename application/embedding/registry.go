package embedding

import (
	"context"
	"sync"

	"nexus-backend/application/ports"
)

// Provider names one embedding backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderVoyage Provider = "voyage"
)

// AllProviders is the fixed provider set, in stable order.
var AllProviders = []Provider{ProviderGemini, ProviderOpenAI, ProviderVoyage}

// EmbeddingField returns the node field the provider's vector is stored in
func (p Provider) EmbeddingField() string {
	return "embedding_" + string(p)
}

// settingsKey is the preference key for the provider's enabled toggle
func (p Provider) settingsKey() string {
	return "embed_" + string(p)
}

// ProviderConfig is one provider's availability and user preference.
// Available means a credential was supplied at startup and is never mutated
// here. Enabled is the user toggle, defaulting to true when available.
type ProviderConfig struct {
	Available bool `json:"available"`
	Enabled   bool `json:"enabled"`
}

// Registry tracks which providers may be used for embedding. It has no side
// effects beyond persisting the enabled toggle through the settings store.
type Registry struct {
	mu        sync.RWMutex
	available map[Provider]bool
	settings  ports.SettingsStore
}

// NewRegistry creates a registry from the credential availability detected
// at startup
func NewRegistry(available map[Provider]bool, settings ports.SettingsStore) *Registry {
	avail := make(map[Provider]bool, len(available))
	for p, ok := range available {
		avail[p] = ok
	}
	return &Registry{available: avail, settings: settings}
}

// Configuration returns the provider's availability and enabled state
func (r *Registry) Configuration(ctx context.Context, provider Provider) ProviderConfig {
	r.mu.RLock()
	available := r.available[provider]
	r.mu.RUnlock()

	enabled := true
	if v, ok, err := r.settings.Get(ctx, provider.settingsKey()); err == nil && ok && v == "false" {
		enabled = false
	}
	return ProviderConfig{Available: available, Enabled: enabled}
}

// SetEnabled persists the user's enabled toggle for a provider
func (r *Registry) SetEnabled(ctx context.Context, provider Provider, enabled bool) error {
	value := "true"
	if !enabled {
		value = "false"
	}
	return r.settings.Set(ctx, provider.settingsKey(), value)
}

// ActiveProviders returns the providers that are both available and enabled,
// in stable order
func (r *Registry) ActiveProviders(ctx context.Context) []Provider {
	active := make([]Provider, 0, len(AllProviders))
	for _, p := range AllProviders {
		cfg := r.Configuration(ctx, p)
		if cfg.Available && cfg.Enabled {
			active = append(active, p)
		}
	}
	return active
}
