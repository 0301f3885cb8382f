package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

// noteRow is the wire shape of one /api/director/notes/search entry.
type noteRow struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Priority  string `json:"priority"`
	CreatedAt string `json:"created_at"`
}

// SearchDirectorNotes implements driven.SchoolAPI. Unlike the listing
// endpoints this one searches server-side; the client does not re-filter.
func (c *Client) SearchDirectorNotes(
	ctx context.Context, query string, yearID int64,
) ([]domain.DirectorNote, error) {
	params := url.Values{}
	params.Set("q", query)
	if yearID > 0 {
		params.Set("academic_year_id", strconv.FormatInt(yearID, 10))
	}

	const path = "/api/director/notes/search"
	var rows []noteRow
	if err := c.get(ctx, path, params, &rows); err != nil {
		return nil, err
	}

	out := make([]domain.DirectorNote, 0, len(rows))
	for _, r := range rows {
		if r.ID <= 0 || r.Title == "" {
			return nil, malformed(path, errIncompleteHit)
		}
		out = append(out, domain.DirectorNote{
			ID:        r.ID,
			Title:     r.Title,
			Content:   r.Content,
			Priority:  r.Priority,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}
