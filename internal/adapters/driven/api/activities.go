package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

// activityRow is the wire shape of one /api/activities entry.
type activityRow struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"activity_date"`
	Session     string `json:"session_type"`
	Active      bool   `json:"is_active"`
}

// ListActivities implements driven.SchoolAPI.
func (c *Client) ListActivities(
	ctx context.Context, yearID int64, session domain.SessionType,
) ([]domain.Activity, error) {
	params := url.Values{}
	if yearID > 0 {
		params.Set("academic_year_id", strconv.FormatInt(yearID, 10))
	}
	if session != domain.SessionAll {
		params.Set("session_type", string(session))
	}

	const path = "/api/activities"
	var rows []activityRow
	if err := c.get(ctx, path, params, &rows); err != nil {
		return nil, err
	}

	out := make([]domain.Activity, 0, len(rows))
	for _, r := range rows {
		if r.ID <= 0 || r.Title == "" {
			return nil, malformed(path, errIncompleteHit)
		}
		out = append(out, domain.Activity{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Date:        r.Date,
			Session:     domain.SessionType(r.Session),
			Active:      r.Active,
		})
	}
	return out, nil
}
