package driven

import (
	"context"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

// EntityFilters narrows the combined entity search on the backend side.
type EntityFilters struct {
	// AcademicYearID scopes results to one school year. Zero means the
	// backend default.
	AcademicYearID int64

	// Session restricts to one session. domain.SessionAll means both.
	Session domain.SessionType

	// DateFrom and DateTo bound results by ISO date, when the backend
	// supports it for the entity kind.
	DateFrom string
	DateTo   string

	// IncludeInactive also returns inactive records.
	IncludeInactive bool

	// Limit caps the number of hits. Zero means the backend default.
	Limit int
}

// SchoolAPI is the client surface of the school-management backend.
// Every method maps to one REST endpoint; decoding failures are reported
// as domain.ErrMalformedResponse and transport failures that indicate a
// connectivity problem wrap domain.ErrBackendUnavailable.
type SchoolAPI interface {
	// SearchEntities performs the primary combined student/teacher search.
	SearchEntities(ctx context.Context, query string, f EntityFilters) (*domain.EntitySearchResult, error)

	// QuickSearch is the simpler fallback used when SearchEntities fails.
	// Its nested current/former lists are reshaped by the caller.
	QuickSearch(ctx context.Context, query string, limit int) (*domain.QuickSearchResult, error)

	// ListAcademicYears returns every academic year.
	ListAcademicYears(ctx context.Context) ([]domain.AcademicYear, error)

	// ListClasses returns the classes of one academic year and session.
	ListClasses(ctx context.Context, yearID int64, session domain.SessionType) ([]domain.Class, error)

	// ListSchedules returns the timetable slots of one year and session.
	ListSchedules(ctx context.Context, yearID int64, session domain.SessionType) ([]domain.ScheduleSlot, error)

	// ListActivities returns the activities of one year and session.
	ListActivities(ctx context.Context, yearID int64, session domain.SessionType) ([]domain.Activity, error)

	// SearchDirectorNotes searches director notes server-side.
	SearchDirectorNotes(ctx context.Context, query string, yearID int64) ([]domain.DirectorNote, error)

	// ListFinanceCategories returns expense and income categories.
	ListFinanceCategories(ctx context.Context, yearID int64) ([]domain.FinanceCategory, error)

	// ListFinanceCards returns the finance balance cards.
	ListFinanceCards(ctx context.Context, yearID int64) ([]domain.FinanceCard, error)
}
