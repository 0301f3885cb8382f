package services

import (
	"fmt"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driven"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Configuration keys in the TOML store.
const (
	keyBaseURL        = "api.base_url"
	keyRole           = "user.role"
	keySession        = "user.session"
	keyAcademicYearID = "academic_year.id"
)

// DefaultBaseURL is used when no backend URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// SettingsService reads and writes the persisted configuration through a
// ConfigStore.
type SettingsService struct {
	store driven.ConfigStore
}

// NewSettingsService creates a settings service over a config store.
func NewSettingsService(store driven.ConfigStore) *SettingsService {
	return &SettingsService{store: store}
}

// Current implements driving.SettingsService.
func (s *SettingsService) Current() driving.Settings {
	base := s.store.GetString(keyBaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	return driving.Settings{
		BaseURL:        base,
		Role:           domain.Role(s.store.GetString(keyRole)),
		Session:        domain.SessionType(s.store.GetString(keySession)),
		AcademicYearID: s.store.GetInt64(keyAcademicYearID),
	}
}

// SetRole implements driving.SettingsService.
func (s *SettingsService) SetRole(role domain.Role) error {
	if len(domain.AllowedScopes(role)) == 0 {
		return fmt.Errorf("unknown role %q: %w", role, domain.ErrInvalidInput)
	}
	return s.store.Set(keyRole, string(role))
}

// SetSession implements driving.SettingsService.
func (s *SettingsService) SetSession(session domain.SessionType) error {
	if session != domain.SessionMorning && session != domain.SessionEvening {
		return fmt.Errorf("unknown session %q: %w", session, domain.ErrInvalidInput)
	}
	return s.store.Set(keySession, string(session))
}

// SetAcademicYear implements driving.SettingsService.
func (s *SettingsService) SetAcademicYear(id int64) error {
	if id <= 0 {
		return fmt.Errorf("academic year id must be positive: %w", domain.ErrInvalidInput)
	}
	return s.store.Set(keyAcademicYearID, id)
}

// SetBaseURL implements driving.SettingsService.
func (s *SettingsService) SetBaseURL(url string) error {
	if url == "" {
		return fmt.Errorf("base url must not be empty: %w", domain.ErrInvalidInput)
	}
	return s.store.Set(keyBaseURL, url)
}

// Reload implements driving.SettingsService.
func (s *SettingsService) Reload() error {
	return s.store.Load()
}
