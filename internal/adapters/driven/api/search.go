package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driven"
)

// universalResponse is the wire shape of /api/search/universal.
type universalResponse struct {
	Results      []universalHit `json:"results"`
	TotalResults int            `json:"total_results"`
	SearchTimeMs int64          `json:"search_time_ms"`
}

// universalHit is one hit from the combined entity search.
type universalHit struct {
	Type        string         `json:"type"`
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Subtitle    string         `json:"subtitle"`
	Description string         `json:"description"`
	Score       float64        `json:"score"`
	Tags        []string       `json:"tags"`
	Data        map[string]any `json:"data"`
}

// decode validates the hit and produces the canonical result.
func (h universalHit) decode(path string) (domain.SearchResult, error) {
	typ := domain.ResultType(h.Type)
	if !typ.Valid() {
		return domain.SearchResult{}, malformed(path, errUnknownType(h.Type))
	}
	if h.ID <= 0 || h.Title == "" {
		return domain.SearchResult{}, malformed(path, errIncompleteHit)
	}

	score := h.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return domain.SearchResult{
		Type:        typ,
		ID:          strconv.FormatInt(h.ID, 10),
		Title:       h.Title,
		Subtitle:    h.Subtitle,
		Description: h.Description,
		Category:    typ.Category(),
		Score:       score,
		Tags:        h.Tags,
		Data:        h.Data,
		Clickable:   true,
	}, nil
}

// SearchEntities implements driven.SchoolAPI.
func (c *Client) SearchEntities(
	ctx context.Context, query string, f driven.EntityFilters,
) (*domain.EntitySearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	if f.AcademicYearID > 0 {
		params.Set("academic_year_id", strconv.FormatInt(f.AcademicYearID, 10))
	}
	if f.Session != domain.SessionAll {
		params.Set("session_type", string(f.Session))
	}
	if f.DateFrom != "" {
		params.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		params.Set("date_to", f.DateTo)
	}
	if f.IncludeInactive {
		params.Set("include_inactive", "true")
	}
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}

	const path = "/api/search/universal"
	var resp universalResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	out := &domain.EntitySearchResult{
		Results:      make([]domain.SearchResult, 0, len(resp.Results)),
		TotalResults: resp.TotalResults,
		SearchTimeMs: resp.SearchTimeMs,
	}
	for _, hit := range resp.Results {
		r, err := hit.decode(path)
		if err != nil {
			return nil, err
		}
		out.Results = append(out.Results, r)
	}
	return out, nil
}

// quickResponse is the wire shape of /api/search/quick: students and
// teachers, each nested into current/former lists.
type quickResponse struct {
	Students quickBucket `json:"students"`
	Teachers quickBucket `json:"teachers"`
}

type quickBucket struct {
	Current []quickPerson `json:"current"`
	Former  []quickPerson `json:"former"`
}

type quickPerson struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	ClassName string `json:"class_name"`
	Subject   string `json:"subject"`
	Session   string `json:"session_type"`
}

func (p quickPerson) decode(path string, former bool) (domain.QuickPerson, error) {
	if p.ID <= 0 || p.FullName == "" {
		return domain.QuickPerson{}, malformed(path, errIncompleteHit)
	}
	return domain.QuickPerson{
		ID:        p.ID,
		Name:      p.FullName,
		ClassName: p.ClassName,
		Subject:   p.Subject,
		Session:   domain.SessionType(p.Session),
		Former:    former,
	}, nil
}

// QuickSearch implements driven.SchoolAPI.
func (c *Client) QuickSearch(ctx context.Context, query string, limit int) (*domain.QuickSearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	const path = "/api/search/quick"
	var resp quickResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	out := &domain.QuickSearchResult{}
	for _, p := range resp.Students.Current {
		qp, err := p.decode(path, false)
		if err != nil {
			return nil, err
		}
		out.CurrentStudents = append(out.CurrentStudents, qp)
	}
	for _, p := range resp.Students.Former {
		qp, err := p.decode(path, true)
		if err != nil {
			return nil, err
		}
		out.FormerStudents = append(out.FormerStudents, qp)
	}
	for _, p := range resp.Teachers.Current {
		qp, err := p.decode(path, false)
		if err != nil {
			return nil, err
		}
		out.CurrentTeachers = append(out.CurrentTeachers, qp)
	}
	for _, p := range resp.Teachers.Former {
		qp, err := p.decode(path, true)
		if err != nil {
			return nil, err
		}
		out.FormerTeachers = append(out.FormerTeachers, qp)
	}
	return out, nil
}
