// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject_AssignsSequentialIDs(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first, err := s.CreateProject(ctx, CreateProjectParams{Title: "First"})
	require.NoError(t, err)
	assert.Equal(t, "001", first.ProjectID)

	second, err := s.CreateProject(ctx, CreateProjectParams{Title: "Second"})
	require.NoError(t, err)
	assert.Equal(t, "002", second.ProjectID)
}

func TestCreateProject_SequenceContinuesAfterSuppliedID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.CreateProject(ctx, CreateProjectParams{ProjectID: "041", Title: "High"})
	require.NoError(t, err)

	next, err := s.CreateProject(ctx, CreateProjectParams{Title: "Auto"})
	require.NoError(t, err)
	assert.Equal(t, "042", next.ProjectID)
}

func TestCreateProject_DuplicateProjectID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.CreateProject(ctx, CreateProjectParams{ProjectID: "001", Title: "A"})
	require.NoError(t, err)

	_, err = s.CreateProject(ctx, CreateProjectParams{ProjectID: "001", Title: "B"})
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestCreateProject_SortOrderAppends(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a, err := s.CreateProject(ctx, CreateProjectParams{Title: "A"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), a.SortOrder)

	b, err := s.CreateProject(ctx, CreateProjectParams{Title: "B"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.SortOrder)
}

func TestListProjects_FeaturedFilter(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.CreateProject(ctx, CreateProjectParams{Title: "Plain"})
	require.NoError(t, err)
	featured, err := s.CreateProject(ctx, CreateProjectParams{Title: "Star", IsFeatured: true})
	require.NoError(t, err)

	all, err := s.ListProjects(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := s.ListProjects(ctx, true)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, featured.ID, only[0].ID)
}

func TestReorderProjects_OmittedRowsKeepOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a, err := s.CreateProject(ctx, CreateProjectParams{Title: "A"})
	require.NoError(t, err)
	b, err := s.CreateProject(ctx, CreateProjectParams{Title: "B"})
	require.NoError(t, err)
	c, err := s.CreateProject(ctx, CreateProjectParams{Title: "C"})
	require.NoError(t, err)

	// Swap A and B, leave C out of the reorder request.
	reordered, err := s.ReorderProjects(ctx, []int64{b.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, reordered, 3)

	assert.Equal(t, b.ID, reordered[0].ID)
	assert.Equal(t, a.ID, reordered[1].ID)
	assert.Equal(t, c.ID, reordered[2].ID)
}

func TestUpdateProject_Partial(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, CreateProjectParams{
		Title: "Original",
		Tech:  []string{"Go"},
		Year:  "2024",
	})
	require.NoError(t, err)

	year := "2025"
	featured := true
	p, err = s.UpdateProject(ctx, p.ID, UpdateProjectParams{Year: &year, IsFeatured: &featured})
	require.NoError(t, err)

	assert.Equal(t, "Original", p.Title)
	assert.Equal(t, "2025", p.Year.String)
	assert.True(t, p.IsFeatured)
	assert.Equal(t, []string{"Go"}, p.Tech)
}

func TestDeleteProject_NotFound(t *testing.T) {
	s := setupTestStore(t)
	assert.ErrorIs(t, s.DeleteProject(context.Background(), 42), ErrNotFound)
}
