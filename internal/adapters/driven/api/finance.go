package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

// financeCategoryRow is the wire shape of one /api/finance/categories entry.
type financeCategoryRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind string `json:"type"`
}

// ListFinanceCategories implements driven.SchoolAPI.
func (c *Client) ListFinanceCategories(ctx context.Context, yearID int64) ([]domain.FinanceCategory, error) {
	params := url.Values{}
	if yearID > 0 {
		params.Set("academic_year_id", strconv.FormatInt(yearID, 10))
	}

	const path = "/api/finance/categories"
	var rows []financeCategoryRow
	if err := c.get(ctx, path, params, &rows); err != nil {
		return nil, err
	}

	out := make([]domain.FinanceCategory, 0, len(rows))
	for _, r := range rows {
		if r.ID <= 0 || r.Name == "" {
			return nil, malformed(path, errIncompleteHit)
		}
		out = append(out, domain.FinanceCategory{ID: r.ID, Name: r.Name, Kind: r.Kind})
	}
	return out, nil
}

// financeCardRow is the wire shape of one /api/finance/cards entry.
type financeCardRow struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Balance float64 `json:"balance"`
}

// ListFinanceCards implements driven.SchoolAPI.
func (c *Client) ListFinanceCards(ctx context.Context, yearID int64) ([]domain.FinanceCard, error) {
	params := url.Values{}
	if yearID > 0 {
		params.Set("academic_year_id", strconv.FormatInt(yearID, 10))
	}

	const path = "/api/finance/cards"
	var rows []financeCardRow
	if err := c.get(ctx, path, params, &rows); err != nil {
		return nil, err
	}

	out := make([]domain.FinanceCard, 0, len(rows))
	for _, r := range rows {
		if r.ID <= 0 || r.Title == "" {
			return nil, malformed(path, errIncompleteHit)
		}
		out = append(out, domain.FinanceCard{ID: r.ID, Title: r.Title, Balance: r.Balance})
	}
	return out, nil
}
