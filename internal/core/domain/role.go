package domain

// Role is the authenticated user's functional designation. It controls
// which scopes are visible and which session the user is bound to.
type Role string

const (
	// RoleDirector is the school director with full visibility.
	RoleDirector Role = "director"
	// RoleAdmin is a system administrator with full visibility.
	RoleAdmin Role = "admin"
	// RoleFinance handles finance records. Never sees teacher results.
	RoleFinance Role = "finance"
	// RoleMorningSupervisor supervises the morning session.
	RoleMorningSupervisor Role = "morning_supervisor"
	// RoleEveningSupervisor supervises the evening session.
	RoleEveningSupervisor Role = "evening_supervisor"
	// RoleRegistrar manages student enrolment records.
	RoleRegistrar Role = "registrar"
)

// CrossSession reports whether the role sees both sessions when no explicit
// session filter is given. Other roles derive the session from their own
// affiliation.
func (r Role) CrossSession() bool {
	return r == RoleDirector || r == RoleAdmin
}

// rolePolicies maps each role to its permitted scopes, in lookup order.
// The table is fixed at compile time and never persisted.
var rolePolicies = map[Role][]Scope{
	RoleDirector: {
		ScopeStudents, ScopeTeachers, ScopeAcademicYears, ScopeClasses,
		ScopeSchedules, ScopeActivities, ScopeDirectorNotes, ScopeFinance,
		ScopePages,
	},
	RoleAdmin: {
		ScopeStudents, ScopeTeachers, ScopeAcademicYears, ScopeClasses,
		ScopeSchedules, ScopeActivities, ScopeFinance, ScopePages,
	},
	RoleFinance: {
		ScopeStudents, ScopeAcademicYears, ScopeFinance, ScopePages,
	},
	RoleMorningSupervisor: {
		ScopeStudents, ScopeTeachers, ScopeClasses, ScopeSchedules,
		ScopeActivities, ScopePages,
	},
	RoleEveningSupervisor: {
		ScopeStudents, ScopeTeachers, ScopeClasses, ScopeSchedules,
		ScopeActivities, ScopePages,
	},
	RoleRegistrar: {
		ScopeStudents, ScopeAcademicYears, ScopeClasses, ScopePages,
	},
}

// AllowedScopes returns the ordered scope set the role may search.
// Unknown roles get an empty set: visibility is granted by the table,
// never assumed.
func AllowedScopes(r Role) []Scope {
	scopes, ok := rolePolicies[r]
	if !ok {
		return nil
	}
	out := make([]Scope, len(scopes))
	copy(out, scopes)
	return out
}

// ScopeAllowed reports whether the role may search the given scope.
func ScopeAllowed(r Role, s Scope) bool {
	for _, allowed := range rolePolicies[r] {
		if allowed == s {
			return true
		}
	}
	return false
}

// EffectiveScopes intersects the requested scopes with the role's permitted
// set, preserving the permitted order. An empty request means every scope
// the role permits.
func EffectiveScopes(r Role, requested []Scope) []Scope {
	allowed := AllowedScopes(r)
	if len(requested) == 0 {
		return allowed
	}

	want := make(map[Scope]bool, len(requested))
	for _, s := range requested {
		want[s] = true
	}

	var out []Scope
	for _, s := range allowed {
		if want[s] {
			out = append(out, s)
		}
	}
	return out
}
