// Package list provides the grouped result list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/madrasa-labs/bahith-cli/internal/adapters/driving/tui/styles"
	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

// rowKind discriminates the flattened display rows.
type rowKind int

const (
	rowHeader rowKind = iota
	rowResult
	rowMore
)

// row is one line of the flattened group display.
type row struct {
	kind      rowKind
	category  string
	result    *domain.SearchResult
	remaining int
}

// GroupList displays grouped search results in a navigable list. Groups
// keep their presentation order; each group shows only its revealed window
// plus a "show more" row while results remain hidden.
type GroupList struct {
	groups   *domain.GroupedResults
	rows     []row
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewGroupList creates a new grouped result list component.
func NewGroupList(s *styles.Styles) *GroupList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &GroupList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the list.
func (l *GroupList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *GroupList) Update(msg tea.Msg) (*GroupList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			l.MoveUp()
		case tea.KeyDown:
			l.MoveDown()
		default:
			// Other keys are handled by the owning view
		}
	}
	return l, nil
}

// SetGroups replaces the displayed groups and resets the selection.
func (l *GroupList) SetGroups(groups *domain.GroupedResults) {
	l.groups = groups
	l.rebuild()
	l.selected = l.firstSelectable()
}

// Groups returns the currently displayed groups.
func (l *GroupList) Groups() *domain.GroupedResults {
	return l.groups
}

// rebuild flattens the groups into display rows over their revealed windows.
func (l *GroupList) rebuild() {
	l.rows = l.rows[:0]
	if l.groups == nil {
		return
	}

	for _, g := range l.groups.Groups {
		if len(g.Results) == 0 {
			continue
		}
		l.rows = append(l.rows, row{kind: rowHeader, category: g.Category})

		revealed := g.Revealed()
		for i := range revealed {
			l.rows = append(l.rows, row{
				kind:     rowResult,
				category: g.Category,
				result:   &revealed[i],
			})
		}

		if !g.Exhausted() {
			l.rows = append(l.rows, row{
				kind:      rowMore,
				category:  g.Category,
				remaining: len(g.Results) - g.Visible,
			})
		}
	}
}

// firstSelectable returns the index of the first non-header row, or 0.
func (l *GroupList) firstSelectable() int {
	for i, r := range l.rows {
		if r.kind != rowHeader {
			return i
		}
	}
	return 0
}

// MoveUp moves the selection to the previous selectable row.
func (l *GroupList) MoveUp() {
	for i := l.selected - 1; i >= 0; i-- {
		if l.rows[i].kind != rowHeader {
			l.selected = i
			return
		}
	}
}

// MoveDown moves the selection to the next selectable row.
func (l *GroupList) MoveDown() {
	for i := l.selected + 1; i < len(l.rows); i++ {
		if l.rows[i].kind != rowHeader {
			l.selected = i
			return
		}
	}
}

// SelectedResult returns the selected result, or nil when the selection
// sits on a "show more" row or the list is empty.
func (l *GroupList) SelectedResult() *domain.SearchResult {
	if l.selected < 0 || l.selected >= len(l.rows) {
		return nil
	}
	return l.rows[l.selected].result
}

// SelectedCategory returns the category the selection belongs to.
func (l *GroupList) SelectedCategory() string {
	if l.selected < 0 || l.selected >= len(l.rows) {
		return ""
	}
	return l.rows[l.selected].category
}

// OnMoreRow reports whether the selection sits on a "show more" row.
func (l *GroupList) OnMoreRow() bool {
	if l.selected < 0 || l.selected >= len(l.rows) {
		return false
	}
	return l.rows[l.selected].kind == rowMore
}

// RevealMore widens the named category's window and reports whether
// anything new became visible. The selection stays on the same row, which
// after a reveal is the first newly revealed result.
func (l *GroupList) RevealMore(category string) bool {
	if l.groups == nil || !l.groups.RevealMore(category) {
		return false
	}
	keep := l.selected
	l.rebuild()
	if keep >= len(l.rows) {
		keep = len(l.rows) - 1
	}
	l.selected = keep
	return true
}

// View renders the list, scrolled so the selection stays visible.
func (l *GroupList) View() string {
	if len(l.rows) == 0 {
		return l.styles.Muted.Render("لا توجد نتائج")
	}

	visible := l.height
	if visible < 3 {
		visible = 3
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.rows) {
		end = len(l.rows)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

// renderRow formats one display row.
func (l *GroupList) renderRow(index int) string {
	r := l.rows[index]

	switch r.kind {
	case rowHeader:
		count := 0
		if g := l.groups.Group(r.category); g != nil {
			count = len(g.Results)
		}
		return l.styles.Category.Render(fmt.Sprintf("%s (%d)", r.category, count))

	case rowMore:
		label := fmt.Sprintf("  عرض المزيد (%d)", r.remaining)
		if index == l.selected {
			return l.styles.Selected.Render(label)
		}
		return l.styles.Subtitle.Render(label)

	default:
		return l.renderResult(index, r.result)
	}
}

// renderResult formats a single search result line.
func (l *GroupList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := result.Title
	if title == "" {
		title = "(بدون عنوان)"
	}
	if result.Subtitle != "" {
		title += " — " + result.Subtitle
	}
	if !result.Clickable {
		title += " (الحالي)"
	}

	maxLen := l.width - 14
	if maxLen < 10 {
		maxLen = 10
	}
	runes := []rune(title)
	if len(runes) > maxLen {
		title = string(runes[:maxLen-1]) + "…"
	}

	line := indicator + title
	if index == l.selected {
		line = l.styles.Selected.Render(line)
	} else {
		line = l.styles.Normal.Render(line)
	}

	if len(result.Tags) > 0 {
		line += " " + l.styles.Tag.Render("["+strings.Join(result.Tags, " ")+"]")
	}
	return line
}

// Count returns the number of results across all groups.
func (l *GroupList) Count() int {
	if l.groups == nil {
		return 0
	}
	return l.groups.Total()
}

// IsEmpty returns whether the list holds no results.
func (l *GroupList) IsEmpty() bool {
	return l.Count() == 0
}

// SetDimensions sets the component dimensions.
func (l *GroupList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *GroupList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *GroupList) Height() int {
	return l.height
}
