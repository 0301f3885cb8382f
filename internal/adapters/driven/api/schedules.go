package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

// scheduleRow is the wire shape of one /api/schedules entry.
type scheduleRow struct {
	ID          int64  `json:"id"`
	ClassName   string `json:"class_name"`
	DayOfWeek   string `json:"day_of_week"`
	Subject     string `json:"subject"`
	TeacherName string `json:"teacher_name"`
	Session     string `json:"session_type"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// ListSchedules implements driven.SchoolAPI.
func (c *Client) ListSchedules(
	ctx context.Context, yearID int64, session domain.SessionType,
) ([]domain.ScheduleSlot, error) {
	params := url.Values{}
	if yearID > 0 {
		params.Set("academic_year_id", strconv.FormatInt(yearID, 10))
	}
	if session != domain.SessionAll {
		params.Set("session_type", string(session))
	}

	const path = "/api/schedules"
	var rows []scheduleRow
	if err := c.get(ctx, path, params, &rows); err != nil {
		return nil, err
	}

	out := make([]domain.ScheduleSlot, 0, len(rows))
	for _, r := range rows {
		if r.ID <= 0 || r.Subject == "" {
			return nil, malformed(path, errIncompleteHit)
		}
		out = append(out, domain.ScheduleSlot{
			ID:          r.ID,
			ClassName:   r.ClassName,
			DayOfWeek:   r.DayOfWeek,
			Subject:     r.Subject,
			TeacherName: r.TeacherName,
			Session:     domain.SessionType(r.Session),
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
		})
	}
	return out, nil
}
