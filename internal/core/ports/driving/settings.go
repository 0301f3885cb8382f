package driving

import "github.com/madrasa-labs/bahith-cli/internal/core/domain"

// Settings is the typed view of the persisted configuration.
type Settings struct {
	// BaseURL is the school backend's base URL.
	BaseURL string

	// Role is the configured user role.
	Role domain.Role

	// Session is the user's session affiliation.
	Session domain.SessionType

	// AcademicYearID is the currently selected academic year.
	AcademicYearID int64
}

// SearchContext derives the aggregator input from the settings.
func (s Settings) SearchContext() domain.SearchContext {
	return domain.SearchContext{
		Role:           s.Role,
		Session:        s.Session,
		AcademicYearID: s.AcademicYearID,
	}
}

// SettingsService reads and writes the persisted configuration.
type SettingsService interface {
	// Current returns the settings as last loaded.
	Current() Settings

	// SetRole updates the configured role.
	SetRole(role domain.Role) error

	// SetSession updates the session affiliation.
	SetSession(session domain.SessionType) error

	// SetAcademicYear updates the selected academic year.
	SetAcademicYear(id int64) error

	// SetBaseURL updates the backend base URL.
	SetBaseURL(url string) error

	// Reload re-reads settings from the backing store.
	Reload() error
}
