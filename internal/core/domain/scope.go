package domain

// Scope names a category of searchable entities. Scopes gate which lookups
// a role may attempt and which results it may retain.
type Scope string

const (
	// ScopeStudents covers student records.
	ScopeStudents Scope = "students"
	// ScopeTeachers covers teacher records.
	ScopeTeachers Scope = "teachers"
	// ScopeClasses covers class sections.
	ScopeClasses Scope = "classes"
	// ScopeSchedules covers timetable slots.
	ScopeSchedules Scope = "schedules"
	// ScopeActivities covers school activities.
	ScopeActivities Scope = "activities"
	// ScopeDirectorNotes covers director notes.
	ScopeDirectorNotes Scope = "director_notes"
	// ScopeFinance covers finance categories and finance cards.
	ScopeFinance Scope = "finance"
	// ScopeAcademicYears covers academic years.
	ScopeAcademicYears Scope = "academic_years"
	// ScopePages covers static application pages.
	ScopePages Scope = "pages"
)

// AllScopes lists every scope in canonical processing order. The aggregator
// attempts lookups in this order, so the concatenated result list is
// deterministic for a fixed set of responses.
var AllScopes = []Scope{
	ScopeStudents,
	ScopeTeachers,
	ScopeAcademicYears,
	ScopeClasses,
	ScopeSchedules,
	ScopeActivities,
	ScopeDirectorNotes,
	ScopeFinance,
	ScopePages,
}

// Valid reports whether the scope is one of the known identifiers.
func (s Scope) Valid() bool {
	for _, known := range AllScopes {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable display label for the scope.
func (s Scope) Label() string {
	switch s {
	case ScopeStudents:
		return "الطلاب"
	case ScopeTeachers:
		return "المعلمون"
	case ScopeClasses:
		return "الصفوف"
	case ScopeSchedules:
		return "الجداول"
	case ScopeActivities:
		return "الأنشطة"
	case ScopeDirectorNotes:
		return "ملاحظات المدير"
	case ScopeFinance:
		return "المالية"
	case ScopeAcademicYears:
		return "الأعوام الدراسية"
	case ScopePages:
		return "الصفحات"
	}
	return string(s)
}
