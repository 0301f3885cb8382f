package domain

import "time"

// SessionType partitions the school day into operational halves.
type SessionType string

const (
	// SessionMorning is the morning session.
	SessionMorning SessionType = "morning"

	// SessionEvening is the evening session.
	SessionEvening SessionType = "evening"

	// SessionAll means no session restriction is applied.
	SessionAll SessionType = ""
)

// ResultType discriminates the kind of entity a SearchResult represents.
type ResultType string

const (
	// TypeStudent is a student record hit.
	TypeStudent ResultType = "student"
	// TypeTeacher is a teacher record hit.
	TypeTeacher ResultType = "teacher"
	// TypeClass is a class (grade section) hit.
	TypeClass ResultType = "class"
	// TypeSchedule is a timetable slot hit.
	TypeSchedule ResultType = "schedule"
	// TypeActivity is a school activity hit.
	TypeActivity ResultType = "activity"
	// TypeDirectorNote is a director note hit.
	TypeDirectorNote ResultType = "director_note"
	// TypeFinance is a finance category hit.
	TypeFinance ResultType = "finance"
	// TypeFinanceCard is a finance card hit.
	TypeFinanceCard ResultType = "finance_card"
	// TypeAcademicYear is an academic year hit.
	TypeAcademicYear ResultType = "academic_year"
	// TypePage is a static application page hit.
	TypePage ResultType = "page"
)

// Valid reports whether the result type is one of the known discriminants.
func (t ResultType) Valid() bool {
	switch t {
	case TypeStudent, TypeTeacher, TypeClass, TypeSchedule, TypeActivity,
		TypeDirectorNote, TypeFinance, TypeFinanceCard, TypeAcademicYear, TypePage:
		return true
	}
	return false
}

// Scope returns the visibility scope that gates this result type.
// Finance categories and finance cards share the finance scope.
func (t ResultType) Scope() Scope {
	switch t {
	case TypeStudent:
		return ScopeStudents
	case TypeTeacher:
		return ScopeTeachers
	case TypeClass:
		return ScopeClasses
	case TypeSchedule:
		return ScopeSchedules
	case TypeActivity:
		return ScopeActivities
	case TypeDirectorNote:
		return ScopeDirectorNotes
	case TypeFinance, TypeFinanceCard:
		return ScopeFinance
	case TypeAcademicYear:
		return ScopeAcademicYears
	case TypePage:
		return ScopePages
	}
	return ""
}

// Category returns the display category used to group results of this type.
func (t ResultType) Category() string {
	switch t {
	case TypeStudent:
		return "الطلاب"
	case TypeTeacher:
		return "المعلمون"
	case TypeClass:
		return "الصفوف"
	case TypeSchedule:
		return "الجداول"
	case TypeActivity:
		return "الأنشطة"
	case TypeDirectorNote:
		return "ملاحظات المدير"
	case TypeFinance:
		return "المالية"
	case TypeFinanceCard:
		return "البطاقات المالية"
	case TypeAcademicYear:
		return "الأعوام الدراسية"
	case TypePage:
		return "الصفحات"
	}
	return string(t)
}

// Filters narrows a search beyond the free-text query.
// The zero value applies no narrowing at all.
type Filters struct {
	// Session restricts results to one session. SessionAll leaves the
	// session to be derived from the caller's role and affiliation.
	Session SessionType

	// DateFrom is an inclusive ISO date (YYYY-MM-DD) lower bound.
	DateFrom string

	// DateTo is an inclusive ISO date (YYYY-MM-DD) upper bound.
	DateTo string

	// IncludeInactive also returns inactive records (withdrawn students,
	// former teachers).
	IncludeInactive bool

	// Scopes restricts which category lookups are attempted. Empty means
	// every scope the role permits.
	Scopes []Scope
}

// SearchContext carries the caller's identity and selection into a search.
// It is injected explicitly so the aggregator stays a pure function of its
// inputs rather than reading ambient application state.
type SearchContext struct {
	// Role is the caller's functional designation.
	Role Role

	// Session is the caller's own session affiliation. Used to derive a
	// session filter for roles that are bound to one session.
	Session SessionType

	// AcademicYearID is the currently selected academic year. Scopes most
	// category lookups and marks the matching year result non-clickable.
	AcademicYearID int64
}

// SearchResult is a single hit produced by the universal search.
// Instances are built fresh per query execution and never cached.
type SearchResult struct {
	// Type discriminates the entity kind.
	Type ResultType `json:"type"`

	// ID identifies the entity within its type's namespace.
	ID string `json:"id"`

	// Title is the primary display line.
	Title string `json:"title"`

	// Subtitle is an optional secondary display line.
	Subtitle string `json:"subtitle,omitempty"`

	// Description is optional longer context shown under the subtitle.
	Description string `json:"description,omitempty"`

	// Category is the display group this result belongs to.
	Category string `json:"category"`

	// Score is the relevance score in [0,1].
	Score float64 `json:"score"`

	// Tags are optional short annotations (session, activity state).
	Tags []string `json:"tags,omitempty"`

	// Data is an opaque payload for downstream navigation.
	Data map[string]any `json:"data,omitempty"`

	// Clickable is false only for the academic-year result that is
	// already the active selection.
	Clickable bool `json:"is_clickable"`
}

// Outcome is the complete product of one search execution.
type Outcome struct {
	// Groups holds the category-grouped results in presentation order.
	Groups *GroupedResults

	// TotalResults counts every result across all groups.
	TotalResults int

	// SearchTime is how long the aggregation took end to end.
	SearchTime time.Duration

	// ConnectivityFailure is true when at least one lookup failed with a
	// network-class error. The only failure mode surfaced to the user;
	// everything else degrades to fewer results.
	ConnectivityFailure bool
}

// SearchTimeMs returns the elapsed search time in whole milliseconds.
func (o *Outcome) SearchTimeMs() int64 {
	return o.SearchTime.Milliseconds()
}

// EmptyOutcome returns an outcome with no results and no groups.
func EmptyOutcome() *Outcome {
	return &Outcome{Groups: &GroupedResults{}}
}
