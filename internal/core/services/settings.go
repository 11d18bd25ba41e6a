package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
	"github.com/custodia-labs/gee/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyGitHubToken        = "github.token"
	KeyGitHubClientID     = "github.client_id"
	KeyGitHubClientSecret = "github.client_secret"
	KeyRequestsPerSecond  = "github.requests_per_second"
	KeyMaxEmails          = "extract.max_emails"
	KeyOwnerMode          = "extract.owner_mode"
	KeyCacheExpiryDays    = "cache.expiry_days"
	KeyCachePath          = "cache.path"
)

var secretKeys = map[string]bool{
	KeyGitHubToken:        true,
	KeyGitHubClientSecret: true,
}

// SettingsService manages persisted settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns persisted settings with defaults applied.
func (s *SettingsService) Get() (domain.Settings, error) {
	defaults := domain.DefaultSettings()

	ownerMode, err := domain.ParseOwnerMode(s.configStore.GetString(KeyOwnerMode))
	if err != nil {
		return domain.Settings{}, fmt.Errorf("%s: %w", KeyOwnerMode, err)
	}

	return domain.Settings{
		Credentials: domain.Credentials{
			Token:        s.configStore.GetString(KeyGitHubToken),
			ClientID:     s.configStore.GetString(KeyGitHubClientID),
			ClientSecret: s.configStore.GetString(KeyGitHubClientSecret),
		},
		MaxEmails:         s.getInt(KeyMaxEmails, defaults.MaxEmails),
		CacheExpiryDays:   s.getInt(KeyCacheExpiryDays, defaults.CacheExpiryDays),
		CachePath:         s.configStore.GetString(KeyCachePath),
		OwnerMode:         ownerMode,
		RequestsPerSecond: s.getFloat(KeyRequestsPerSecond, defaults.RequestsPerSecond),
	}, nil
}

// Set validates a value for key and persists it with its native type.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyGitHubToken, KeyGitHubClientID, KeyGitHubClientSecret, KeyCachePath:
		return s.configStore.Set(key, value)

	case KeyOwnerMode:
		mode, err := domain.ParseOwnerMode(value)
		if err != nil {
			return err
		}
		return s.configStore.Set(key, string(mode))

	case KeyMaxEmails:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, int64(n))

	case KeyCacheExpiryDays:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be zero or a positive integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, int64(n))

	case KeyRequestsPerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, f)

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Values returns every persisted setting with secrets masked.
func (s *SettingsService) Values() []driving.SettingValue {
	keys := s.configStore.Keys()
	values := make([]driving.SettingValue, 0, len(keys))
	for _, key := range keys {
		raw, _ := s.configStore.Get(key)
		display := fmt.Sprint(raw)
		if secretKeys[key] {
			display = MaskSecret(display)
		}
		values = append(values, driving.SettingValue{Key: key, Value: display})
	}
	return values
}

// Path returns the location of the settings file.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// SettingKeys returns every key accepted by Set.
func SettingKeys() []string {
	return []string{
		KeyGitHubToken,
		KeyGitHubClientID,
		KeyGitHubClientSecret,
		KeyRequestsPerSecond,
		KeyMaxEmails,
		KeyOwnerMode,
		KeyCacheExpiryDays,
		KeyCachePath,
	}
}

// MaskSecret keeps the last four characters of a secret.
func MaskSecret(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", 8) + secret[len(secret)-4:]
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}
