package ports

import "context"

// SettingsStore is a small key-value capability for user preferences, such
// as per-provider embedding toggles.
type SettingsStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value under the key.
	Set(ctx context.Context, key, value string) error
}
