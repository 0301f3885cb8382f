package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driven"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driving"
	"github.com/madrasa-labs/bahith-cli/internal/logger"
)

// Ensure Aggregator implements the interface.
var _ driving.SearchService = (*Aggregator)(nil)

// entitySearchLimit caps the primary combined entity search.
const entitySearchLimit = 50

// Fixed per-category relevance scores. The backend only ranks the combined
// entity search; every other category gets a constant.
const (
	scoreQuickEntity  = 0.8
	scoreAcademicYear = 0.6
	scoreClass        = 0.7
	scoreSchedule     = 0.6
	scoreActivity     = 0.6
	scoreDirectorNote = 0.65
	scoreFinance      = 0.7
	scoreFinanceCard  = 0.7
)

// Aggregator fans a query out across every category the caller's role and
// filters permit, merges the heterogeneous results into canonical form, and
// groups them deterministically for presentation.
type Aggregator struct {
	api driven.SchoolAPI
}

// NewAggregator creates a search aggregator over the school backend API.
func NewAggregator(api driven.SchoolAPI) *Aggregator {
	return &Aggregator{api: api}
}

// categoryJob is one independent lookup in the fan-out. Jobs write into
// pre-allocated slots so the concatenation order stays deterministic no
// matter how network latency interleaves their completion.
type categoryJob struct {
	scope domain.Scope
	run   func(ctx context.Context) []domain.SearchResult
}

// Search implements driving.SearchService.
func (a *Aggregator) Search(
	ctx context.Context, query string, filters domain.Filters, sc domain.SearchContext,
) (*domain.Outcome, error) {
	start := time.Now()

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, no lookups attempted")
		return domain.EmptyOutcome(), nil
	}

	scopes := domain.EffectiveScopes(sc.Role, filters.Scopes)
	if len(scopes) == 0 {
		logger.Debug("No permitted scopes for role %q, returning empty", sc.Role)
		return domain.EmptyOutcome(), nil
	}

	session := effectiveSession(filters, sc)

	logger.Section("Search Execution")
	logger.Debug("Query: %q role=%s session=%s year=%d scopes=%v",
		query, sc.Role, session, sc.AcademicYearID, scopes)

	// Connectivity failures are collected, not propagated: the search
	// still returns whatever the healthy lookups produced.
	var connectivity atomic.Bool
	note := func(err error) {
		if domain.IsConnectivity(err) {
			connectivity.Store(true)
		}
	}

	jobs := a.buildJobs(query, filters, sc, session, scopes, note)

	slots := make([][]domain.SearchResult, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job categoryJob) {
			defer wg.Done()
			slots[i] = job.run(ctx)
		}(i, job)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search cancelled: %w", err)
	}

	var flat []domain.SearchResult
	for _, slot := range slots {
		flat = append(flat, slot...)
	}

	flat = filterByPolicy(flat, sc.Role, scopes)

	groups := domain.NewGroupedResults(flat)
	sortGroups(groups)

	outcome := &domain.Outcome{
		Groups:              groups,
		TotalResults:        len(flat),
		SearchTime:          time.Since(start),
		ConnectivityFailure: connectivity.Load(),
	}

	logger.Info("Search done: %d results in %d groups (%dms)",
		outcome.TotalResults, len(groups.Groups), outcome.SearchTimeMs())

	return outcome, nil
}

// effectiveSession resolves the session filter. An explicit filter always
// wins; cross-session roles otherwise see both sessions, everyone else is
// bound to their own affiliation.
func effectiveSession(filters domain.Filters, sc domain.SearchContext) domain.SessionType {
	if filters.Session != domain.SessionAll {
		return filters.Session
	}
	if sc.Role.CrossSession() {
		return domain.SessionAll
	}
	return sc.Session
}

// buildJobs assembles the fan-out in canonical scope order. The combined
// entity search covers both the students and teachers scopes with a single
// backend call.
func (a *Aggregator) buildJobs(
	query string,
	filters domain.Filters,
	sc domain.SearchContext,
	session domain.SessionType,
	scopes []domain.Scope,
	note func(error),
) []categoryJob {
	has := make(map[domain.Scope]bool, len(scopes))
	for _, s := range scopes {
		has[s] = true
	}

	var jobs []categoryJob

	if has[domain.ScopeStudents] || has[domain.ScopeTeachers] {
		jobs = append(jobs, categoryJob{
			scope: domain.ScopeStudents,
			run: func(ctx context.Context) []domain.SearchResult {
				return a.searchEntities(ctx, query, filters, sc, session, note)
			},
		})
	}

	if has[domain.ScopeAcademicYears] {
		jobs = append(jobs, categoryJob{
			scope: domain.ScopeAcademicYears,
			run: func(ctx context.Context) []domain.SearchResult {
				return a.searchAcademicYears(ctx, query, sc, note)
			},
		})
	}

	if has[domain.ScopeClasses] {
		jobs = append(jobs, categoryJob{
			scope: domain.ScopeClasses,
			run: func(ctx context.Context) []domain.SearchResult {
				return a.searchClasses(ctx, query, sc.AcademicYearID, session, note)
			},
		})
	}

	if has[domain.ScopeSchedules] {
		jobs = append(jobs, categoryJob{
			scope: domain.ScopeSchedules,
			run: func(ctx context.Context) []domain.SearchResult {
				return a.searchSchedules(ctx, query, sc.AcademicYearID, session, note)
			},
		})
	}

	if has[domain.ScopeActivities] {
		jobs = append(jobs, categoryJob{
			scope: domain.ScopeActivities,
			run: func(ctx context.Context) []domain.SearchResult {
				return a.searchActivities(ctx, query, filters, sc.AcademicYearID, session, note)
			},
		})
	}

	if has[domain.ScopeDirectorNotes] {
		jobs = append(jobs, categoryJob{
			scope: domain.ScopeDirectorNotes,
			run: func(ctx context.Context) []domain.SearchResult {
				return a.searchDirectorNotes(ctx, query, sc.AcademicYearID, note)
			},
		})
	}

	if has[domain.ScopeFinance] {
		jobs = append(jobs, categoryJob{
			scope: domain.ScopeFinance,
			run: func(ctx context.Context) []domain.SearchResult {
				return a.searchFinance(ctx, query, sc.AcademicYearID, note)
			},
		})
	}

	if has[domain.ScopePages] {
		jobs = append(jobs, categoryJob{
			scope: domain.ScopePages,
			run: func(_ context.Context) []domain.SearchResult {
				return domain.SearchPages(query, sc.Role)
			},
		})
	}

	return jobs
}

// searchEntities runs the primary combined student/teacher search and falls
// back to the quick search when it fails. Both failing means zero entity
// results, never an aborted search.
func (a *Aggregator) searchEntities(
	ctx context.Context,
	query string,
	filters domain.Filters,
	sc domain.SearchContext,
	session domain.SessionType,
	note func(error),
) []domain.SearchResult {
	f := driven.EntityFilters{
		AcademicYearID:  sc.AcademicYearID,
		Session:         session,
		DateFrom:        filters.DateFrom,
		DateTo:          filters.DateTo,
		IncludeInactive: filters.IncludeInactive,
		Limit:           entitySearchLimit,
	}

	res, err := a.api.SearchEntities(ctx, query, f)
	if err == nil {
		logger.Debug("Entity search: %d hits (backend reported %d total)",
			len(res.Results), res.TotalResults)
		return res.Results
	}

	note(err)
	logger.Warn("Entity search failed: %v (falling back to quick search)", err)

	quick, qerr := a.api.QuickSearch(ctx, query, entitySearchLimit)
	if qerr != nil {
		note(qerr)
		logger.Warn("Quick search fallback failed: %v", qerr)
		return nil
	}

	return reshapeQuickSearch(quick, filters.IncludeInactive)
}

// reshapeQuickSearch flattens the quick search's nested current/former
// student and teacher lists into canonical results.
func reshapeQuickSearch(q *domain.QuickSearchResult, includeInactive bool) []domain.SearchResult {
	var out []domain.SearchResult

	addStudent := func(p domain.QuickPerson) {
		r := domain.SearchResult{
			Type:      domain.TypeStudent,
			ID:        strconv.FormatInt(p.ID, 10),
			Title:     p.Name,
			Subtitle:  p.ClassName,
			Category:  domain.TypeStudent.Category(),
			Score:     scoreQuickEntity,
			Clickable: true,
		}
		if p.Former {
			r.Tags = []string{"سابق"}
		}
		out = append(out, r)
	}
	addTeacher := func(p domain.QuickPerson) {
		r := domain.SearchResult{
			Type:      domain.TypeTeacher,
			ID:        strconv.FormatInt(p.ID, 10),
			Title:     p.Name,
			Subtitle:  p.Subject,
			Category:  domain.TypeTeacher.Category(),
			Score:     scoreQuickEntity,
			Clickable: true,
		}
		if p.Former {
			r.Tags = []string{"سابق"}
		}
		out = append(out, r)
	}

	for _, p := range q.CurrentStudents {
		addStudent(p)
	}
	for _, p := range q.CurrentTeachers {
		addTeacher(p)
	}
	if includeInactive {
		for _, p := range q.FormerStudents {
			addStudent(p)
		}
		for _, p := range q.FormerTeachers {
			addTeacher(p)
		}
	}

	return out
}

func (a *Aggregator) searchAcademicYears(
	ctx context.Context, query string, sc domain.SearchContext, note func(error),
) []domain.SearchResult {
	years, err := a.api.ListAcademicYears(ctx)
	if err != nil {
		note(err)
		logger.Category("academic_years", "lookup failed: %v", err)
		return nil
	}

	var out []domain.SearchResult
	for _, y := range years {
		if !domain.MatchesQuery(y.Name, query) {
			continue
		}
		r := domain.SearchResult{
			Type:     domain.TypeAcademicYear,
			ID:       strconv.FormatInt(y.ID, 10),
			Title:    y.Name,
			Subtitle: y.StartDate + " - " + y.EndDate,
			Category: domain.TypeAcademicYear.Category(),
			Score:    scoreAcademicYear,
			// The already-selected year is the one result that is not a
			// navigation target.
			Clickable: y.ID != sc.AcademicYearID,
		}
		if y.Active {
			r.Tags = []string{"نشط"}
		}
		out = append(out, r)
	}
	return out
}

func (a *Aggregator) searchClasses(
	ctx context.Context, query string, yearID int64, session domain.SessionType, note func(error),
) []domain.SearchResult {
	classes, err := a.api.ListClasses(ctx, yearID, session)
	if err != nil {
		note(err)
		logger.Category("classes", "lookup failed: %v", err)
		return nil
	}

	var out []domain.SearchResult
	for _, c := range classes {
		if !domain.MatchesQuery(c.Name, query) {
			continue
		}
		out = append(out, domain.SearchResult{
			Type:      domain.TypeClass,
			ID:        strconv.FormatInt(c.ID, 10),
			Title:     c.Name,
			Subtitle:  fmt.Sprintf("%s · %d طالب", sessionLabel(c.Session), c.StudentCount),
			Category:  domain.TypeClass.Category(),
			Score:     scoreClass,
			Clickable: true,
		})
	}
	return out
}

func (a *Aggregator) searchSchedules(
	ctx context.Context, query string, yearID int64, session domain.SessionType, note func(error),
) []domain.SearchResult {
	slots, err := a.api.ListSchedules(ctx, yearID, session)
	if err != nil {
		note(err)
		logger.Category("schedules", "lookup failed: %v", err)
		return nil
	}

	var out []domain.SearchResult
	for _, s := range slots {
		if !domain.MatchesQuery(s.Subject, query) &&
			!domain.MatchesQuery(s.TeacherName, query) &&
			!domain.MatchesQuery(s.ClassName, query) {
			continue
		}
		out = append(out, domain.SearchResult{
			Type:        domain.TypeSchedule,
			ID:          strconv.FormatInt(s.ID, 10),
			Title:       s.Subject,
			Subtitle:    s.ClassName + " · " + s.DayOfWeek,
			Description: s.TeacherName,
			Category:    domain.TypeSchedule.Category(),
			Score:       scoreSchedule,
			Tags:        []string{s.StartTime + "-" + s.EndTime},
			Clickable:   true,
		})
	}
	return out
}

func (a *Aggregator) searchActivities(
	ctx context.Context,
	query string,
	filters domain.Filters,
	yearID int64,
	session domain.SessionType,
	note func(error),
) []domain.SearchResult {
	activities, err := a.api.ListActivities(ctx, yearID, session)
	if err != nil {
		note(err)
		logger.Category("activities", "lookup failed: %v", err)
		return nil
	}

	var out []domain.SearchResult
	for _, act := range activities {
		if !domain.MatchesQuery(act.Title, query) && !domain.MatchesQuery(act.Description, query) {
			continue
		}
		if !act.Active && !filters.IncludeInactive {
			continue
		}
		// ISO dates compare lexically.
		if filters.DateFrom != "" && act.Date < filters.DateFrom {
			continue
		}
		if filters.DateTo != "" && act.Date > filters.DateTo {
			continue
		}
		out = append(out, domain.SearchResult{
			Type:        domain.TypeActivity,
			ID:          strconv.FormatInt(act.ID, 10),
			Title:       act.Title,
			Subtitle:    act.Date,
			Description: act.Description,
			Category:    domain.TypeActivity.Category(),
			Score:       scoreActivity,
			Tags:        []string{sessionLabel(act.Session)},
			Clickable:   true,
		})
	}
	return out
}

func (a *Aggregator) searchDirectorNotes(
	ctx context.Context, query string, yearID int64, note func(error),
) []domain.SearchResult {
	notes, err := a.api.SearchDirectorNotes(ctx, query, yearID)
	if err != nil {
		note(err)
		logger.Category("director_notes", "lookup failed: %v", err)
		return nil
	}

	var out []domain.SearchResult
	for _, n := range notes {
		r := domain.SearchResult{
			Type:        domain.TypeDirectorNote,
			ID:          strconv.FormatInt(n.ID, 10),
			Title:       n.Title,
			Subtitle:    n.CreatedAt,
			Description: n.Content,
			Category:    domain.TypeDirectorNote.Category(),
			Score:       scoreDirectorNote,
			Clickable:   true,
		}
		if n.Priority != "" {
			r.Tags = []string{n.Priority}
		}
		out = append(out, r)
	}
	return out
}

// searchFinance covers both finance endpoints. The two calls run
// sequentially inside one job; they share the finance scope.
func (a *Aggregator) searchFinance(
	ctx context.Context, query string, yearID int64, note func(error),
) []domain.SearchResult {
	var out []domain.SearchResult

	categories, err := a.api.ListFinanceCategories(ctx, yearID)
	if err != nil {
		note(err)
		logger.Category("finance", "categories lookup failed: %v", err)
	} else {
		for _, c := range categories {
			if !domain.MatchesQuery(c.Name, query) {
				continue
			}
			out = append(out, domain.SearchResult{
				Type:      domain.TypeFinance,
				ID:        strconv.FormatInt(c.ID, 10),
				Title:     c.Name,
				Subtitle:  financeKindLabel(c.Kind),
				Category:  domain.TypeFinance.Category(),
				Score:     scoreFinance,
				Clickable: true,
			})
		}
	}

	cards, err := a.api.ListFinanceCards(ctx, yearID)
	if err != nil {
		note(err)
		logger.Category("finance", "cards lookup failed: %v", err)
	} else {
		for _, c := range cards {
			if !domain.MatchesQuery(c.Title, query) {
				continue
			}
			out = append(out, domain.SearchResult{
				Type:      domain.TypeFinanceCard,
				ID:        strconv.FormatInt(c.ID, 10),
				Title:     c.Title,
				Subtitle:  strconv.FormatFloat(c.Balance, 'f', 2, 64),
				Category:  domain.TypeFinanceCard.Category(),
				Score:     scoreFinanceCard,
				Clickable: true,
			})
		}
	}

	return out
}

// filterByPolicy enforces the visibility invariant on the merged list: a
// result survives only if its type's scope was actually searched, and the
// finance role never retains teacher results regardless of what the
// combined entity search returned.
func filterByPolicy(results []domain.SearchResult, role domain.Role, scopes []domain.Scope) []domain.SearchResult {
	allowed := make(map[domain.Scope]bool, len(scopes))
	for _, s := range scopes {
		allowed[s] = true
	}

	out := results[:0]
	for _, r := range results {
		if !allowed[r.Type.Scope()] {
			continue
		}
		if role == domain.RoleFinance && r.Type == domain.TypeTeacher {
			continue
		}
		out = append(out, r)
	}
	return out
}

// sortGroups orders categories for presentation: pages first, the rest by
// Arabic collation. Stable so arrival order within equal keys is kept.
func sortGroups(gr *domain.GroupedResults) {
	c := collate.New(language.Arabic)
	pagesCategory := domain.TypePage.Category()

	sort.SliceStable(gr.Groups, func(i, j int) bool {
		a, b := gr.Groups[i].Category, gr.Groups[j].Category
		if a == pagesCategory {
			return b != pagesCategory
		}
		if b == pagesCategory {
			return false
		}
		return c.CompareString(a, b) < 0
	})
}

func sessionLabel(s domain.SessionType) string {
	switch s {
	case domain.SessionMorning:
		return "صباحي"
	case domain.SessionEvening:
		return "مسائي"
	}
	return "الكل"
}

func financeKindLabel(kind string) string {
	switch kind {
	case "expense":
		return "مصروفات"
	case "income":
		return "إيرادات"
	}
	return kind
}
