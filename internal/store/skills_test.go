// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSkill_PerCategoryOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a, err := s.CreateSkill(ctx, CreateSkillParams{Category: "languages", Name: "Go"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), a.SortOrder)

	b, err := s.CreateSkill(ctx, CreateSkillParams{Category: "languages", Name: "Rust"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.SortOrder)

	// A different category starts its own sequence.
	c, err := s.CreateSkill(ctx, CreateSkillParams{Category: "tools", Name: "Docker"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), c.SortOrder)
}

func TestListSkills_GroupedByCategory(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, p := range []CreateSkillParams{
		{Category: "languages", Name: "Go"},
		{Category: "languages", Name: "Rust"},
		{Category: "tools", Name: "Docker"},
	} {
		_, err := s.CreateSkill(ctx, p)
		require.NoError(t, err)
	}

	grouped, err := s.ListSkills(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Rust"}, grouped["languages"])
	assert.Equal(t, []string{"Docker"}, grouped["tools"])
}

func TestReplaceSkillCategory_Destructive(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.CreateSkill(ctx, CreateSkillParams{Category: "languages", Name: "Go"})
	require.NoError(t, err)
	_, err = s.CreateSkill(ctx, CreateSkillParams{Category: "tools", Name: "Docker"})
	require.NoError(t, err)

	grouped, err := s.ReplaceSkillCategory(ctx, "languages", []string{"Rust", "Zig"})
	require.NoError(t, err)

	// The old entry is gone, the new order is the input order, and other
	// categories are untouched.
	assert.Equal(t, []string{"Rust", "Zig"}, grouped["languages"])
	assert.Equal(t, []string{"Docker"}, grouped["tools"])
}

func TestReplaceSkillCategory_EmptyClearsCategory(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.CreateSkill(ctx, CreateSkillParams{Category: "languages", Name: "Go"})
	require.NoError(t, err)

	grouped, err := s.ReplaceSkillCategory(ctx, "languages", nil)
	require.NoError(t, err)
	assert.NotContains(t, grouped, "languages")
}

func TestUpdateSkill_MoveCategory(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	skill, err := s.CreateSkill(ctx, CreateSkillParams{Category: "languages", Name: "Docker"})
	require.NoError(t, err)

	category := "tools"
	skill, err = s.UpdateSkill(ctx, skill.ID, UpdateSkillParams{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, "tools", skill.Category)
	assert.Equal(t, "Docker", skill.Name)
}

func TestDeleteSkill_NotFound(t *testing.T) {
	s := setupTestStore(t)
	assert.ErrorIs(t, s.DeleteSkill(context.Background(), 99), ErrNotFound)
}
