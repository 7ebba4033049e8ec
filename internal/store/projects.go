// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/olegiv/portfolio-go/internal/model"
)

// CreateProjectParams holds the fields for a new project. An empty
// ProjectID is replaced by the next value in the zero-padded sequence.
type CreateProjectParams struct {
	ProjectID   string
	Title       string
	Description string
	Tech        []string
	Year        string
	Link        string
	ImageURL    string
	IsFeatured  bool
}

// UpdateProjectParams holds a partial update; nil fields are left untouched.
type UpdateProjectParams struct {
	ProjectID   *string
	Title       *string
	Description *string
	Tech        *[]string
	Year        *string
	Link        *string
	ImageURL    *string
	IsFeatured  *bool
	SortOrder   *int64
}

// CreateProject inserts a new project at the end of the display order.
func (s *Store) CreateProject(ctx context.Context, p CreateProjectParams) (model.Project, error) {
	projectID := p.ProjectID
	if projectID == "" {
		var err error
		projectID, err = s.NextProjectID(ctx)
		if err != nil {
			return model.Project{}, err
		}
	}

	sortOrder, err := s.nextSortOrder(ctx, "SELECT MAX(sort_order) AS max FROM projects")
	if err != nil {
		return model.Project{}, err
	}

	res, err := s.Exec(ctx,
		`INSERT INTO projects (project_id, title, description, tech, year, link, image_url, is_featured, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		projectID, p.Title, nullable(p.Description), encodeList(p.Tech), nullable(p.Year),
		nullable(p.Link), nullable(p.ImageURL), boolToInt(p.IsFeatured), sortOrder)
	if err != nil {
		return model.Project{}, err
	}
	return s.GetProjectByID(ctx, res.LastInsertID)
}

// NextProjectID computes the next external project identifier: the highest
// existing numeric project_id plus one, zero-padded to three digits.
// Returns "001" when no projects exist.
func (s *Store) NextProjectID(ctx context.Context) (string, error) {
	row, err := s.QueryOne(ctx,
		"SELECT project_id FROM projects ORDER BY CAST(project_id AS INTEGER) DESC LIMIT 1")
	if errors.Is(err, ErrNotFound) {
		return "001", nil
	}
	if err != nil {
		return "", err
	}

	last, err := strconv.Atoi(row.String("project_id"))
	if err != nil {
		return "", fmt.Errorf("non-numeric project_id %q: %w", row.String("project_id"), err)
	}
	return fmt.Sprintf("%03d", last+1), nil
}

// GetProjectByID fetches a single project by its internal id.
func (s *Store) GetProjectByID(ctx context.Context, id int64) (model.Project, error) {
	row, err := s.QueryOne(ctx, "SELECT * FROM projects WHERE id = ?", id)
	if err != nil {
		return model.Project{}, err
	}
	return projectFromRow(row), nil
}

// GetProjectByProjectID fetches a single project by its external
// zero-padded identifier.
func (s *Store) GetProjectByProjectID(ctx context.Context, projectID string) (model.Project, error) {
	row, err := s.QueryOne(ctx, "SELECT * FROM projects WHERE project_id = ?", projectID)
	if err != nil {
		return model.Project{}, err
	}
	return projectFromRow(row), nil
}

// ListProjects returns projects in display order, optionally featured only.
func (s *Store) ListProjects(ctx context.Context, featuredOnly bool) ([]model.Project, error) {
	query := "SELECT * FROM projects"
	if featuredOnly {
		query += " WHERE is_featured = 1"
	}
	query += " ORDER BY sort_order ASC, id ASC"

	rows, err := s.QueryAll(ctx, query)
	if err != nil {
		return nil, err
	}
	projects := make([]model.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, projectFromRow(row))
	}
	return projects, nil
}

// UpdateProject applies a partial update.
func (s *Store) UpdateProject(ctx context.Context, id int64, p UpdateProjectParams) (model.Project, error) {
	if _, err := s.GetProjectByID(ctx, id); err != nil {
		return model.Project{}, err
	}

	set := []string{}
	args := []any{}
	appendSet := func(col string, val any) {
		set = append(set, col+" = ?")
		args = append(args, val)
	}

	if p.ProjectID != nil {
		appendSet("project_id", *p.ProjectID)
	}
	if p.Title != nil {
		appendSet("title", *p.Title)
	}
	if p.Description != nil {
		appendSet("description", nullable(*p.Description))
	}
	if p.Tech != nil {
		appendSet("tech", encodeList(*p.Tech))
	}
	if p.Year != nil {
		appendSet("year", nullable(*p.Year))
	}
	if p.Link != nil {
		appendSet("link", nullable(*p.Link))
	}
	if p.ImageURL != nil {
		appendSet("image_url", nullable(*p.ImageURL))
	}
	if p.IsFeatured != nil {
		appendSet("is_featured", boolToInt(*p.IsFeatured))
	}
	if p.SortOrder != nil {
		appendSet("sort_order", *p.SortOrder)
	}

	if len(set) > 0 {
		set = append(set, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, id)
		if _, err := s.Exec(ctx, buildUpdate("projects", set), args...); err != nil {
			return model.Project{}, err
		}
	}

	return s.GetProjectByID(ctx, id)
}

// DeleteProject removes a project. Returns ErrNotFound for an unknown id.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.Exec(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderProjects rewrites sort_order so each listed id takes its position
// index in the input. Ids absent from the input keep their previous
// sort_order.
func (s *Store) ReorderProjects(ctx context.Context, orderedIDs []int64) ([]model.Project, error) {
	stmts := make([]Statement, 0, len(orderedIDs))
	for index, id := range orderedIDs {
		stmts = append(stmts, Statement{
			Query: "UPDATE projects SET sort_order = ? WHERE id = ?",
			Args:  []any{index, id},
		})
	}
	if err := s.ExecBatch(ctx, stmts); err != nil {
		return nil, err
	}
	return s.ListProjects(ctx, false)
}

func projectFromRow(r Row) model.Project {
	return model.Project{
		ID:          r.Int64("id"),
		ProjectID:   r.String("project_id"),
		Title:       r.String("title"),
		Description: r.NullString("description"),
		Tech:        r.StringList("tech"),
		Year:        r.NullString("year"),
		Link:        r.NullString("link"),
		ImageURL:    r.NullString("image_url"),
		IsFeatured:  r.Bool("is_featured"),
		SortOrder:   r.Int64("sort_order"),
		CreatedAt:   r.Time("created_at"),
		UpdatedAt:   r.Time("updated_at"),
	}
}
