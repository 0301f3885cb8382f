package domain

// Entity rows returned by the school backend's category listing endpoints.
// The API adapter decodes each endpoint's payload into exactly one of these
// shapes; the aggregator turns matching rows into SearchResult values.

// AcademicYear is one school year (e.g., "2024-2025").
type AcademicYear struct {
	ID        int64
	Name      string
	StartDate string
	EndDate   string
	Active    bool
}

// Class is a grade section within an academic year.
type Class struct {
	ID           int64
	Name         string
	Session      SessionType
	StudentCount int
}

// ScheduleSlot is one timetable entry.
type ScheduleSlot struct {
	ID          int64
	ClassName   string
	DayOfWeek   string
	Subject     string
	TeacherName string
	Session     SessionType
	StartTime   string
	EndTime     string
}

// Activity is a school activity or event.
type Activity struct {
	ID          int64
	Title       string
	Description string
	Date        string
	Session     SessionType
	Active      bool
}

// DirectorNote is a note written by the director.
type DirectorNote struct {
	ID        int64
	Title     string
	Content   string
	Priority  string
	CreatedAt string
}

// FinanceCategory is an expense or income category.
type FinanceCategory struct {
	ID   int64
	Name string
	Kind string // "expense" or "income"
}

// FinanceCard is a named balance card.
type FinanceCard struct {
	ID      int64
	Title   string
	Balance float64
}

// QuickPerson is one entry from the quick-search fallback's nested
// current/former lists.
type QuickPerson struct {
	ID        int64
	Name      string
	ClassName string
	Subject   string
	Session   SessionType
	Former    bool
}

// QuickSearchResult is the quick-search fallback payload: students and
// teachers, each split into current and former.
type QuickSearchResult struct {
	CurrentStudents []QuickPerson
	FormerStudents  []QuickPerson
	CurrentTeachers []QuickPerson
	FormerTeachers  []QuickPerson
}

// EntitySearchResult is the primary combined search payload. Results are
// already in canonical form; the backend reports its own totals.
type EntitySearchResult struct {
	Results      []SearchResult
	TotalResults int
	SearchTimeMs int64
}
