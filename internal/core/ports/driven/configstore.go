package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation, e.g. "extract.max_emails".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if absent or not a string.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if absent or not an integer.
	GetInt(key string) int

	// GetFloat retrieves a float value, or 0 if absent or not numeric.
	GetFloat(key string) float64

	// Keys returns every configured key in sorted order.
	Keys() []string

	// Set stores a configuration value and persists it immediately.
	Set(key string, value any) error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
