// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/portfolio-go/internal/model"
)

// CreateExperienceParams holds the fields for a new experience entry.
type CreateExperienceParams struct {
	Period       string
	Company      string
	Role         string
	Description  string
	Tech         []string
	IsCurrent    bool
	IsInternship bool
}

// UpdateExperienceParams holds a partial update; nil fields are left untouched.
type UpdateExperienceParams struct {
	Period       *string
	Company      *string
	Role         *string
	Description  *string
	Tech         *[]string
	IsCurrent    *bool
	IsInternship *bool
	SortOrder    *int64
}

// CreateExperience inserts a new experience at the end of the display
// order (current max sort_order plus one, zero-based from an empty table).
func (s *Store) CreateExperience(ctx context.Context, p CreateExperienceParams) (model.Experience, error) {
	sortOrder, err := s.nextSortOrder(ctx, "SELECT MAX(sort_order) AS max FROM experiences")
	if err != nil {
		return model.Experience{}, err
	}

	res, err := s.Exec(ctx,
		`INSERT INTO experiences (period, company, role, description, tech, is_current, is_internship, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Period, p.Company, p.Role, nullable(p.Description), encodeList(p.Tech),
		boolToInt(p.IsCurrent), boolToInt(p.IsInternship), sortOrder)
	if err != nil {
		return model.Experience{}, err
	}
	return s.GetExperienceByID(ctx, res.LastInsertID)
}

// GetExperienceByID fetches a single experience.
func (s *Store) GetExperienceByID(ctx context.Context, id int64) (model.Experience, error) {
	row, err := s.QueryOne(ctx, "SELECT * FROM experiences WHERE id = ?", id)
	if err != nil {
		return model.Experience{}, err
	}
	return experienceFromRow(row), nil
}

// ListExperiences returns all experiences in display order.
func (s *Store) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	rows, err := s.QueryAll(ctx, "SELECT * FROM experiences ORDER BY sort_order ASC, id ASC")
	if err != nil {
		return nil, err
	}
	experiences := make([]model.Experience, 0, len(rows))
	for _, row := range rows {
		experiences = append(experiences, experienceFromRow(row))
	}
	return experiences, nil
}

// UpdateExperience applies a partial update.
func (s *Store) UpdateExperience(ctx context.Context, id int64, p UpdateExperienceParams) (model.Experience, error) {
	if _, err := s.GetExperienceByID(ctx, id); err != nil {
		return model.Experience{}, err
	}

	set := []string{}
	args := []any{}
	appendSet := func(col string, val any) {
		set = append(set, col+" = ?")
		args = append(args, val)
	}

	if p.Period != nil {
		appendSet("period", *p.Period)
	}
	if p.Company != nil {
		appendSet("company", *p.Company)
	}
	if p.Role != nil {
		appendSet("role", *p.Role)
	}
	if p.Description != nil {
		appendSet("description", nullable(*p.Description))
	}
	if p.Tech != nil {
		appendSet("tech", encodeList(*p.Tech))
	}
	if p.IsCurrent != nil {
		appendSet("is_current", boolToInt(*p.IsCurrent))
	}
	if p.IsInternship != nil {
		appendSet("is_internship", boolToInt(*p.IsInternship))
	}
	if p.SortOrder != nil {
		appendSet("sort_order", *p.SortOrder)
	}

	if len(set) > 0 {
		set = append(set, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, id)
		if _, err := s.Exec(ctx, buildUpdate("experiences", set), args...); err != nil {
			return model.Experience{}, err
		}
	}

	return s.GetExperienceByID(ctx, id)
}

// DeleteExperience removes an experience. Returns ErrNotFound for an
// unknown id.
func (s *Store) DeleteExperience(ctx context.Context, id int64) error {
	res, err := s.Exec(ctx, "DELETE FROM experiences WHERE id = ?", id)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderExperiences rewrites sort_order so each listed id takes its
// position index in the input. Ids absent from the input keep their
// previous sort_order.
func (s *Store) ReorderExperiences(ctx context.Context, orderedIDs []int64) ([]model.Experience, error) {
	stmts := make([]Statement, 0, len(orderedIDs))
	for index, id := range orderedIDs {
		stmts = append(stmts, Statement{
			Query: "UPDATE experiences SET sort_order = ? WHERE id = ?",
			Args:  []any{index, id},
		})
	}
	if err := s.ExecBatch(ctx, stmts); err != nil {
		return nil, err
	}
	return s.ListExperiences(ctx)
}

func experienceFromRow(r Row) model.Experience {
	return model.Experience{
		ID:           r.Int64("id"),
		Period:       r.String("period"),
		Company:      r.String("company"),
		Role:         r.String("role"),
		Description:  r.NullString("description"),
		Tech:         r.StringList("tech"),
		IsCurrent:    r.Bool("is_current"),
		IsInternship: r.Bool("is_internship"),
		SortOrder:    r.Int64("sort_order"),
		CreatedAt:    r.Time("created_at"),
		UpdatedAt:    r.Time("updated_at"),
	}
}

// nextSortOrder runs a MAX(sort_order) query and returns max+1, or 0 for
// an empty scope.
func (s *Store) nextSortOrder(ctx context.Context, query string, args ...any) (int64, error) {
	row, err := s.QueryOne(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	if _, ok := row["max"]; !ok || row["max"] == nil {
		return 0, nil
	}
	return row.Int64("max") + 1, nil
}

// buildUpdate assembles an UPDATE statement from SET clauses.
func buildUpdate(table string, set []string) string {
	query := "UPDATE " + table + " SET "
	for i, clause := range set {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	return query + " WHERE id = ?"
}
