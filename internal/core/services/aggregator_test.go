package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockSchoolAPI implements driven.SchoolAPI with canned responses and
// per-endpoint error injection. It records every call for assertions on
// which lookups were attempted.
type mockSchoolAPI struct {
	mu    sync.Mutex
	calls []string

	entityResult *domain.EntitySearchResult
	entityErr    error

	quickResult *domain.QuickSearchResult
	quickErr    error

	years    []domain.AcademicYear
	yearsErr error

	classes         []domain.Class
	classesErr      error
	lastClassesSess domain.SessionType

	slots        []domain.ScheduleSlot
	schedulesErr error

	activities    []domain.Activity
	activitiesErr error

	notes    []domain.DirectorNote
	notesErr error

	financeCategories []domain.FinanceCategory
	financeCatsErr    error

	financeCards    []domain.FinanceCard
	financeCardsErr error
}

func (m *mockSchoolAPI) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockSchoolAPI) called(call string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (m *mockSchoolAPI) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockSchoolAPI) SearchEntities(
	_ context.Context, _ string, _ driven.EntityFilters,
) (*domain.EntitySearchResult, error) {
	m.record("entities")
	if m.entityErr != nil {
		return nil, m.entityErr
	}
	if m.entityResult == nil {
		return &domain.EntitySearchResult{}, nil
	}
	return m.entityResult, nil
}

func (m *mockSchoolAPI) QuickSearch(_ context.Context, _ string, _ int) (*domain.QuickSearchResult, error) {
	m.record("quick")
	if m.quickErr != nil {
		return nil, m.quickErr
	}
	if m.quickResult == nil {
		return &domain.QuickSearchResult{}, nil
	}
	return m.quickResult, nil
}

func (m *mockSchoolAPI) ListAcademicYears(_ context.Context) ([]domain.AcademicYear, error) {
	m.record("years")
	return m.years, m.yearsErr
}

func (m *mockSchoolAPI) ListClasses(
	_ context.Context, _ int64, session domain.SessionType,
) ([]domain.Class, error) {
	m.record("classes")
	m.mu.Lock()
	m.lastClassesSess = session
	m.mu.Unlock()
	return m.classes, m.classesErr
}

func (m *mockSchoolAPI) ListSchedules(
	_ context.Context, _ int64, _ domain.SessionType,
) ([]domain.ScheduleSlot, error) {
	m.record("schedules")
	return m.slots, m.schedulesErr
}

func (m *mockSchoolAPI) ListActivities(
	_ context.Context, _ int64, _ domain.SessionType,
) ([]domain.Activity, error) {
	m.record("activities")
	return m.activities, m.activitiesErr
}

func (m *mockSchoolAPI) SearchDirectorNotes(
	_ context.Context, _ string, _ int64,
) ([]domain.DirectorNote, error) {
	m.record("notes")
	return m.notes, m.notesErr
}

func (m *mockSchoolAPI) ListFinanceCategories(_ context.Context, _ int64) ([]domain.FinanceCategory, error) {
	m.record("finance_categories")
	return m.financeCategories, m.financeCatsErr
}

func (m *mockSchoolAPI) ListFinanceCards(_ context.Context, _ int64) ([]domain.FinanceCard, error) {
	m.record("finance_cards")
	return m.financeCards, m.financeCardsErr
}

// --- Fixtures ---

func entityHit(typ domain.ResultType, id int64, title string) domain.SearchResult {
	return domain.SearchResult{
		Type:      typ,
		ID:        fmt.Sprintf("%d", id),
		Title:     title,
		Category:  typ.Category(),
		Score:     0.9,
		Clickable: true,
	}
}

// fullFixture populates every endpoint with rows matching "ا", which occurs
// in every Arabic fixture string.
func fullFixture() *mockSchoolAPI {
	return &mockSchoolAPI{
		entityResult: &domain.EntitySearchResult{
			Results: []domain.SearchResult{
				entityHit(domain.TypeStudent, 1, "أحمد خالد"),
				entityHit(domain.TypeTeacher, 2, "أحمد سمير"),
			},
			TotalResults: 2,
			SearchTimeMs: 3,
		},
		years: []domain.AcademicYear{
			{ID: 7, Name: "السنة الدراسية 2024-2025", StartDate: "2024-09-01", EndDate: "2025-06-30", Active: true},
			{ID: 6, Name: "السنة الدراسية 2023-2024", StartDate: "2023-09-01", EndDate: "2024-06-30"},
		},
		classes: []domain.Class{
			{ID: 11, Name: "الصف الأول", Session: domain.SessionMorning, StudentCount: 24},
		},
		slots: []domain.ScheduleSlot{
			{ID: 21, ClassName: "الصف الأول", DayOfWeek: "الأحد", Subject: "الرياضيات",
				TeacherName: "أحمد سمير", Session: domain.SessionMorning,
				StartTime: "08:00", EndTime: "08:45"},
		},
		activities: []domain.Activity{
			{ID: 31, Title: "رحلة الربيع", Description: "نشاط ترفيهي", Date: "2025-04-10",
				Session: domain.SessionMorning, Active: true},
		},
		notes: []domain.DirectorNote{
			{ID: 41, Title: "اجتماع المعلمين", Content: "تحضير الاختبارات", Priority: "عاجل", CreatedAt: "2025-03-01"},
		},
		financeCategories: []domain.FinanceCategory{
			{ID: 51, Name: "الرواتب", Kind: "expense"},
		},
		financeCards: []domain.FinanceCard{
			{ID: 61, Title: "الصندوق الرئيسي", Balance: 1200.50},
		},
	}
}

func directorContext() domain.SearchContext {
	return domain.SearchContext{
		Role:           domain.RoleDirector,
		Session:        domain.SessionMorning,
		AcademicYearID: 7,
	}
}

// --- Tests ---

func TestAggregatorEmptyQuery(t *testing.T) {
	api := fullFixture()
	agg := NewAggregator(api)

	for _, query := range []string{"", "   ", "\t"} {
		outcome, err := agg.Search(context.Background(), query, domain.Filters{}, directorContext())
		require.NoError(t, err)
		assert.True(t, outcome.Groups.Empty())
		assert.Zero(t, outcome.TotalResults)
	}
	assert.Zero(t, api.callCount(), "empty query must not hit the network")
}

func TestAggregatorRoleScopeContainment(t *testing.T) {
	roles := []domain.Role{
		domain.RoleDirector, domain.RoleAdmin, domain.RoleFinance,
		domain.RoleMorningSupervisor, domain.RoleEveningSupervisor, domain.RoleRegistrar,
	}

	for _, role := range roles {
		t.Run(string(role), func(t *testing.T) {
			api := fullFixture()
			agg := NewAggregator(api)
			sc := directorContext()
			sc.Role = role

			outcome, err := agg.Search(context.Background(), "ا", domain.Filters{}, sc)
			require.NoError(t, err)

			allowed := make(map[domain.Scope]bool)
			for _, s := range domain.AllowedScopes(role) {
				allowed[s] = true
			}
			for _, g := range outcome.Groups.Groups {
				for _, r := range g.Results {
					assert.True(t, allowed[r.Type.Scope()],
						"role %s must not see %s result %q", role, r.Type, r.Title)
				}
			}
		})
	}
}

func TestAggregatorFinanceNeverSeesTeachers(t *testing.T) {
	api := fullFixture()
	agg := NewAggregator(api)
	sc := directorContext()
	sc.Role = domain.RoleFinance

	outcome, err := agg.Search(context.Background(), "أحمد", domain.Filters{}, sc)
	require.NoError(t, err)

	students := outcome.Groups.Group(domain.TypeStudent.Category())
	require.NotNil(t, students, "finance must still see matching students")
	assert.Nil(t, outcome.Groups.Group(domain.TypeTeacher.Category()))

	for _, g := range outcome.Groups.Groups {
		for _, r := range g.Results {
			assert.NotEqual(t, domain.TypeTeacher, r.Type)
		}
	}
}

func TestAggregatorDisallowedScopeRequest(t *testing.T) {
	api := fullFixture()
	agg := NewAggregator(api)
	sc := directorContext()
	sc.Role = domain.RoleMorningSupervisor

	outcome, err := agg.Search(context.Background(), "ا",
		domain.Filters{Scopes: []domain.Scope{domain.ScopeFinance}}, sc)
	require.NoError(t, err)

	assert.True(t, outcome.Groups.Empty())
	assert.False(t, api.called("finance_categories"), "finance lookup must not be attempted")
	assert.False(t, api.called("finance_cards"))
	assert.Zero(t, api.callCount())
}

func TestAggregatorIdempotence(t *testing.T) {
	api := fullFixture()
	agg := NewAggregator(api)

	first, err := agg.Search(context.Background(), "ا", domain.Filters{}, directorContext())
	require.NoError(t, err)
	second, err := agg.Search(context.Background(), "ا", domain.Filters{}, directorContext())
	require.NoError(t, err)

	assert.Equal(t, first.TotalResults, second.TotalResults)
	assert.Equal(t, first.Groups, second.Groups)
}

func TestAggregatorCategoryOrdering(t *testing.T) {
	api := fullFixture()
	agg := NewAggregator(api)

	outcome, err := agg.Search(context.Background(), "ا", domain.Filters{}, directorContext())
	require.NoError(t, err)
	require.Greater(t, len(outcome.Groups.Groups), 2)

	pagesCategory := domain.TypePage.Category()
	assert.Equal(t, pagesCategory, outcome.Groups.Groups[0].Category,
		"pages must come first when present")

	c := collate.New(language.Arabic)
	rest := outcome.Groups.Groups[1:]
	for i := 1; i < len(rest); i++ {
		assert.LessOrEqual(t, c.CompareString(rest[i-1].Category, rest[i].Category), 0,
			"categories after pages must be in Arabic collation order: %q before %q",
			rest[i-1].Category, rest[i].Category)
	}
}

func TestAggregatorQuickSearchFallback(t *testing.T) {
	api := fullFixture()
	api.entityErr = errors.New("boom")
	api.quickResult = &domain.QuickSearchResult{
		CurrentStudents: []domain.QuickPerson{{ID: 1, Name: "أحمد خالد", ClassName: "الصف الأول"}},
		FormerStudents:  []domain.QuickPerson{{ID: 2, Name: "أحمد منصور", Former: true}},
		CurrentTeachers: []domain.QuickPerson{{ID: 3, Name: "أحمد سمير", Subject: "الرياضيات"}},
	}
	agg := NewAggregator(api)

	t.Run("current entries are reshaped", func(t *testing.T) {
		outcome, err := agg.Search(context.Background(), "أحمد", domain.Filters{}, directorContext())
		require.NoError(t, err)
		assert.True(t, api.called("quick"))

		students := outcome.Groups.Group(domain.TypeStudent.Category())
		require.NotNil(t, students)
		assert.Len(t, students.Results, 1)
		assert.Equal(t, "الصف الأول", students.Results[0].Subtitle)

		teachers := outcome.Groups.Group(domain.TypeTeacher.Category())
		require.NotNil(t, teachers)
		assert.Equal(t, "الرياضيات", teachers.Results[0].Subtitle)
	})

	t.Run("former entries require include-inactive", func(t *testing.T) {
		outcome, err := agg.Search(context.Background(), "أحمد",
			domain.Filters{IncludeInactive: true}, directorContext())
		require.NoError(t, err)

		students := outcome.Groups.Group(domain.TypeStudent.Category())
		require.NotNil(t, students)
		require.Len(t, students.Results, 2)
		assert.Contains(t, students.Results[1].Tags, "سابق")
	})

	t.Run("both paths failing yields zero entity results", func(t *testing.T) {
		api.quickErr = errors.New("also down")
		outcome, err := agg.Search(context.Background(), "أحمد", domain.Filters{}, directorContext())
		require.NoError(t, err)
		assert.Nil(t, outcome.Groups.Group(domain.TypeStudent.Category()))
		api.quickErr = nil
	})
}

func TestAggregatorActiveYearNotClickable(t *testing.T) {
	api := fullFixture()
	agg := NewAggregator(api)

	outcome, err := agg.Search(context.Background(), "السنة", domain.Filters{}, directorContext())
	require.NoError(t, err)

	years := outcome.Groups.Group(domain.TypeAcademicYear.Category())
	require.NotNil(t, years)
	require.Len(t, years.Results, 2)

	for _, r := range years.Results {
		if r.ID == "7" {
			assert.False(t, r.Clickable, "the selected year must not be clickable")
		} else {
			assert.True(t, r.Clickable)
		}
	}
}

func TestAggregatorPartialCategoryFailure(t *testing.T) {
	api := fullFixture()
	api.classesErr = errors.New("500 internal server error")
	agg := NewAggregator(api)

	outcome, err := agg.Search(context.Background(), "ا", domain.Filters{}, directorContext())
	require.NoError(t, err, "a category failure must not abort the search")

	assert.Nil(t, outcome.Groups.Group(domain.TypeClass.Category()))
	assert.NotNil(t, outcome.Groups.Group(domain.TypeSchedule.Category()),
		"other categories still return results")
	assert.False(t, outcome.ConnectivityFailure,
		"a plain server error is not a connectivity failure")
}

func TestAggregatorConnectivityFailureSurfaced(t *testing.T) {
	api := fullFixture()
	api.yearsErr = fmt.Errorf("dial tcp: %w", domain.ErrBackendUnavailable)
	agg := NewAggregator(api)

	outcome, err := agg.Search(context.Background(), "ا", domain.Filters{}, directorContext())
	require.NoError(t, err)
	assert.True(t, outcome.ConnectivityFailure)
	assert.Nil(t, outcome.Groups.Group(domain.TypeAcademicYear.Category()))
}

func TestAggregatorSessionDerivation(t *testing.T) {
	t.Run("bound role derives session from affiliation", func(t *testing.T) {
		api := fullFixture()
		agg := NewAggregator(api)
		sc := directorContext()
		sc.Role = domain.RoleEveningSupervisor
		sc.Session = domain.SessionEvening

		_, err := agg.Search(context.Background(), "ا", domain.Filters{}, sc)
		require.NoError(t, err)
		assert.Equal(t, domain.SessionEvening, api.lastClassesSess)
	})

	t.Run("cross-session role sees both sessions", func(t *testing.T) {
		api := fullFixture()
		agg := NewAggregator(api)

		_, err := agg.Search(context.Background(), "ا", domain.Filters{}, directorContext())
		require.NoError(t, err)
		assert.Equal(t, domain.SessionAll, api.lastClassesSess)
	})

	t.Run("explicit filter overrides the derivation", func(t *testing.T) {
		api := fullFixture()
		agg := NewAggregator(api)

		_, err := agg.Search(context.Background(), "ا",
			domain.Filters{Session: domain.SessionMorning}, directorContext())
		require.NoError(t, err)
		assert.Equal(t, domain.SessionMorning, api.lastClassesSess)
	})
}

func TestAggregatorDateRangeOnActivities(t *testing.T) {
	api := fullFixture()
	api.activities = append(api.activities, domain.Activity{
		ID: 32, Title: "رحلة الخريف", Date: "2024-10-05",
		Session: domain.SessionMorning, Active: true,
	})
	agg := NewAggregator(api)

	outcome, err := agg.Search(context.Background(), "رحلة",
		domain.Filters{DateFrom: "2025-01-01"}, directorContext())
	require.NoError(t, err)

	activities := outcome.Groups.Group(domain.TypeActivity.Category())
	require.NotNil(t, activities)
	require.Len(t, activities.Results, 1)
	assert.Equal(t, "رحلة الربيع", activities.Results[0].Title)
}
