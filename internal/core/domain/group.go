package domain

const (
	// InitialReveal is how many results each category shows at first.
	InitialReveal = 10

	// RevealStep is how many more results a reveal adds to a category.
	RevealStep = 10
)

// ResultGroup is one display category with its ordered results and the
// size of the currently revealed slice. All results are in memory; only
// the revealed window grows.
type ResultGroup struct {
	// Category is the display label shared by every result in the group.
	Category string

	// Results holds the group's results in arrival order.
	Results []SearchResult

	// Visible is the current reveal window size.
	Visible int
}

// Revealed returns the currently visible slice of the group.
func (g *ResultGroup) Revealed() []SearchResult {
	if g.Visible >= len(g.Results) {
		return g.Results
	}
	return g.Results[:g.Visible]
}

// Exhausted reports whether every result in the group is revealed.
func (g *ResultGroup) Exhausted() bool {
	return g.Visible >= len(g.Results)
}

// GroupedResults holds result groups in presentation order.
type GroupedResults struct {
	// Groups is the ordered list of non-empty categories.
	Groups []*ResultGroup
}

// Total counts every result across all groups.
func (gr *GroupedResults) Total() int {
	n := 0
	for _, g := range gr.Groups {
		n += len(g.Results)
	}
	return n
}

// Empty reports whether no group holds any result.
func (gr *GroupedResults) Empty() bool {
	return gr.Total() == 0
}

// Group returns the group for a category, or nil.
func (gr *GroupedResults) Group(category string) *ResultGroup {
	for _, g := range gr.Groups {
		if g.Category == category {
			return g
		}
	}
	return nil
}

// RevealMore grows the named category's reveal window by RevealStep.
// It reports whether the window actually grew.
func (gr *GroupedResults) RevealMore(category string) bool {
	g := gr.Group(category)
	if g == nil || g.Exhausted() {
		return false
	}
	g.Visible += RevealStep
	if g.Visible > len(g.Results) {
		g.Visible = len(g.Results)
	}
	return true
}

// NewGroupedResults buckets a flat result list by category, preserving
// arrival order within each bucket. Group order follows first appearance;
// callers that need presentation order sort the groups afterwards.
func NewGroupedResults(results []SearchResult) *GroupedResults {
	gr := &GroupedResults{}
	byCategory := make(map[string]*ResultGroup)

	for _, r := range results {
		g, ok := byCategory[r.Category]
		if !ok {
			g = &ResultGroup{Category: r.Category}
			byCategory[r.Category] = g
			gr.Groups = append(gr.Groups, g)
		}
		g.Results = append(g.Results, r)
	}

	for _, g := range gr.Groups {
		g.Visible = InitialReveal
		if g.Visible > len(g.Results) {
			g.Visible = len(g.Results)
		}
	}

	return gr
}
