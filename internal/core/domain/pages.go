package domain

import "strconv"

// Page is a static application page. Pages are defined client-side and are
// the one category not fetched from the backend: each page carries its own
// role list, checked independently of the scope policy.
type Page struct {
	// ID is the stable page identifier.
	ID int64

	// Title is the display title.
	Title string

	// Route is the navigation target.
	Route string

	// Keywords are extra terms the page matches on.
	Keywords []string

	// Roles lists the roles that may see the page.
	Roles []Role
}

// pageScore is the fixed relevance for static page hits.
const pageScore = 0.5

// pages is the static registry of searchable application pages.
var pages = []Page{
	{
		ID: 1, Title: "لوحة التحكم", Route: "/dashboard",
		Keywords: []string{"الرئيسية", "dashboard"},
		Roles:    []Role{RoleDirector, RoleAdmin, RoleFinance, RoleMorningSupervisor, RoleEveningSupervisor, RoleRegistrar},
	},
	{
		ID: 2, Title: "الطلاب", Route: "/students",
		Keywords: []string{"طالب", "تسجيل", "students"},
		Roles:    []Role{RoleDirector, RoleAdmin, RoleMorningSupervisor, RoleEveningSupervisor, RoleRegistrar},
	},
	{
		ID: 3, Title: "المعلمون", Route: "/teachers",
		Keywords: []string{"معلم", "كادر", "teachers"},
		Roles:    []Role{RoleDirector, RoleAdmin, RoleMorningSupervisor, RoleEveningSupervisor},
	},
	{
		ID: 4, Title: "الجدول الدراسي", Route: "/schedule",
		Keywords: []string{"جدول", "حصص", "schedule"},
		Roles:    []Role{RoleDirector, RoleAdmin, RoleMorningSupervisor, RoleEveningSupervisor},
	},
	{
		ID: 5, Title: "المالية", Route: "/finance",
		Keywords: []string{"مالية", "دفعات", "رسوم", "finance"},
		Roles:    []Role{RoleDirector, RoleAdmin, RoleFinance},
	},
	{
		ID: 6, Title: "الأنشطة", Route: "/activities",
		Keywords: []string{"نشاط", "فعالية", "activities"},
		Roles:    []Role{RoleDirector, RoleAdmin, RoleMorningSupervisor, RoleEveningSupervisor},
	},
	{
		ID: 7, Title: "ملاحظات المدير", Route: "/director-notes",
		Keywords: []string{"ملاحظة", "مدير", "notes"},
		Roles:    []Role{RoleDirector},
	},
	{
		ID: 8, Title: "التقارير", Route: "/reports",
		Keywords: []string{"تقرير", "إحصائيات", "reports"},
		Roles:    []Role{RoleDirector, RoleAdmin, RoleFinance},
	},
	{
		ID: 9, Title: "الإعدادات", Route: "/settings",
		Keywords: []string{"إعداد", "تهيئة", "settings"},
		Roles:    []Role{RoleDirector, RoleAdmin},
	},
}

// VisibleTo reports whether the page's own role list includes the role.
func (p *Page) VisibleTo(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// matches reports whether the page's title or keywords contain the query.
func (p *Page) matches(query string) bool {
	if MatchesQuery(p.Title, query) {
		return true
	}
	for _, kw := range p.Keywords {
		if MatchesQuery(kw, query) {
			return true
		}
	}
	return false
}

// SearchPages returns page results matching the query, filtered by each
// page's own role list. Registry order is preserved.
func SearchPages(query string, role Role) []SearchResult {
	var results []SearchResult
	for i := range pages {
		p := &pages[i]
		if !p.VisibleTo(role) || !p.matches(query) {
			continue
		}
		results = append(results, SearchResult{
			Type:      TypePage,
			ID:        strconv.FormatInt(p.ID, 10),
			Title:     p.Title,
			Subtitle:  p.Route,
			Category:  TypePage.Category(),
			Score:     pageScore,
			Data:      map[string]any{"route": p.Route},
			Clickable: true,
		})
	}
	return results
}
