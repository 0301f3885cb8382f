package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

// academicYearRow is the wire shape of one /api/academic/years entry.
type academicYearRow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Active    bool   `json:"is_active"`
}

// ListAcademicYears implements driven.SchoolAPI.
func (c *Client) ListAcademicYears(ctx context.Context) ([]domain.AcademicYear, error) {
	const path = "/api/academic/years"
	var rows []academicYearRow
	if err := c.get(ctx, path, nil, &rows); err != nil {
		return nil, err
	}

	out := make([]domain.AcademicYear, 0, len(rows))
	for _, r := range rows {
		if r.ID <= 0 || r.Name == "" {
			return nil, malformed(path, errIncompleteHit)
		}
		out = append(out, domain.AcademicYear{
			ID:        r.ID,
			Name:      r.Name,
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			Active:    r.Active,
		})
	}
	return out, nil
}

// classRow is the wire shape of one /api/academic/classes entry.
type classRow struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Session      string `json:"session_type"`
	StudentCount int    `json:"student_count"`
}

// ListClasses implements driven.SchoolAPI.
func (c *Client) ListClasses(
	ctx context.Context, yearID int64, session domain.SessionType,
) ([]domain.Class, error) {
	params := url.Values{}
	if yearID > 0 {
		params.Set("academic_year_id", strconv.FormatInt(yearID, 10))
	}
	if session != domain.SessionAll {
		params.Set("session_type", string(session))
	}

	const path = "/api/academic/classes"
	var rows []classRow
	if err := c.get(ctx, path, params, &rows); err != nil {
		return nil, err
	}

	out := make([]domain.Class, 0, len(rows))
	for _, r := range rows {
		if r.ID <= 0 || r.Name == "" {
			return nil, malformed(path, errIncompleteHit)
		}
		out = append(out, domain.Class{
			ID:           r.ID,
			Name:         r.Name,
			Session:      domain.SessionType(r.Session),
			StudentCount: r.StudentCount,
		})
	}
	return out, nil
}
