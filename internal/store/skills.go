// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/portfolio-go/internal/model"
)

// CreateSkillParams holds the fields for a new skill.
type CreateSkillParams struct {
	Category string
	Name     string
}

// UpdateSkillParams holds a partial update; nil fields are left untouched.
type UpdateSkillParams struct {
	Category  *string
	Name      *string
	SortOrder *int64
}

// CreateSkill inserts a new skill at the end of its category's display
// order. Sort order is scoped per category.
func (s *Store) CreateSkill(ctx context.Context, p CreateSkillParams) (model.Skill, error) {
	sortOrder, err := s.nextSortOrder(ctx,
		"SELECT MAX(sort_order) AS max FROM skills WHERE category = ?", p.Category)
	if err != nil {
		return model.Skill{}, err
	}

	res, err := s.Exec(ctx,
		"INSERT INTO skills (category, name, sort_order) VALUES (?, ?, ?)",
		p.Category, p.Name, sortOrder)
	if err != nil {
		return model.Skill{}, err
	}
	return s.GetSkillByID(ctx, res.LastInsertID)
}

// GetSkillByID fetches a single skill.
func (s *Store) GetSkillByID(ctx context.Context, id int64) (model.Skill, error) {
	row, err := s.QueryOne(ctx, "SELECT * FROM skills WHERE id = ?", id)
	if err != nil {
		return model.Skill{}, err
	}
	return skillFromRow(row), nil
}

// ListSkills returns skill names grouped by category, each category in its
// display order.
func (s *Store) ListSkills(ctx context.Context) (map[string][]string, error) {
	skills, err := s.ListSkillsRaw(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]string)
	for _, skill := range skills {
		grouped[skill.Category] = append(grouped[skill.Category], skill.Name)
	}
	return grouped, nil
}

// ListSkillsRaw returns all skill rows ordered by category then display
// order.
func (s *Store) ListSkillsRaw(ctx context.Context) ([]model.Skill, error) {
	rows, err := s.QueryAll(ctx, "SELECT * FROM skills ORDER BY category ASC, sort_order ASC, id ASC")
	if err != nil {
		return nil, err
	}
	skills := make([]model.Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, skillFromRow(row))
	}
	return skills, nil
}

// UpdateSkill applies a partial update.
func (s *Store) UpdateSkill(ctx context.Context, id int64, p UpdateSkillParams) (model.Skill, error) {
	if _, err := s.GetSkillByID(ctx, id); err != nil {
		return model.Skill{}, err
	}

	set := []string{}
	args := []any{}
	if p.Category != nil {
		set = append(set, "category = ?")
		args = append(args, *p.Category)
	}
	if p.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *p.Name)
	}
	if p.SortOrder != nil {
		set = append(set, "sort_order = ?")
		args = append(args, *p.SortOrder)
	}

	if len(set) > 0 {
		args = append(args, id)
		if _, err := s.Exec(ctx, buildUpdate("skills", set), args...); err != nil {
			return model.Skill{}, err
		}
	}

	return s.GetSkillByID(ctx, id)
}

// DeleteSkill removes a skill. Returns ErrNotFound for an unknown id.
func (s *Store) DeleteSkill(ctx context.Context, id int64) error {
	res, err := s.Exec(ctx, "DELETE FROM skills WHERE id = ?", id)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceSkillCategory deletes every skill in the category and inserts the
// given names in order, with sort_order equal to the array index. A full
// destructive replace, not a merge.
func (s *Store) ReplaceSkillCategory(ctx context.Context, category string, names []string) (map[string][]string, error) {
	stmts := []Statement{{
		Query: "DELETE FROM skills WHERE category = ?",
		Args:  []any{category},
	}}
	for index, name := range names {
		stmts = append(stmts, Statement{
			Query: "INSERT INTO skills (category, name, sort_order) VALUES (?, ?, ?)",
			Args:  []any{category, name, index},
		})
	}
	if err := s.ExecBatch(ctx, stmts); err != nil {
		return nil, err
	}
	return s.ListSkills(ctx)
}

func skillFromRow(r Row) model.Skill {
	return model.Skill{
		ID:        r.Int64("id"),
		Category:  r.String("category"),
		Name:      r.String("name"),
		SortOrder: r.Int64("sort_order"),
		CreatedAt: r.Time("created_at"),
	}
}
