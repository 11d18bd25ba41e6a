package driving

import "github.com/custodia-labs/gee/internal/core/domain"

// SettingsService manages persisted application settings.
type SettingsService interface {
	// Get returns the persisted settings with defaults applied.
	Get() (domain.Settings, error)

	// Set validates and persists a single setting by key.
	Set(key, value string) error

	// Values returns every persisted key with its raw value, sorted by key.
	// Secrets are masked.
	Values() []SettingValue

	// Path returns the location of the settings file.
	Path() string
}

// SettingValue is a persisted key and its display value.
type SettingValue struct {
	Key   string
	Value string
}
