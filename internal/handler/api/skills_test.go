// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"testing"
)

func createTestSkill(t *testing.T, env *testEnv, token, category, name string) SkillResponse {
	t.Helper()

	rec := env.request(t, http.MethodPost, "/skills", CreateSkillRequest{
		Category: category,
		Name:     name,
	}, token)
	wantStatus(t, rec, http.StatusCreated)

	var skill SkillResponse
	decodeData(t, rec, &skill)
	return skill
}

func TestCreateSkill(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	first := createTestSkill(t, env, token, "languages", "Go")
	second := createTestSkill(t, env, token, "languages", "Rust")
	other := createTestSkill(t, env, token, "tools", "Docker")

	if first.SortOrder != 0 || second.SortOrder != 1 {
		t.Errorf("languages sort orders = %d, %d, want 0, 1", first.SortOrder, second.SortOrder)
	}
	if other.SortOrder != 0 {
		t.Errorf("tools sort order = %d, want 0 (scoped per category)", other.SortOrder)
	}
}

func TestCreateSkill_Validation(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.request(t, http.MethodPost, "/skills", CreateSkillRequest{}, token)
	wantStatus(t, rec, http.StatusBadRequest)

	detail := decodeError(t, rec)
	if _, ok := detail.Details["category"]; !ok {
		t.Error("expected a category field error")
	}
	if _, ok := detail.Details["name"]; !ok {
		t.Error("expected a name field error")
	}
}

func TestListSkills_Grouped(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	createTestSkill(t, env, token, "languages", "Go")
	createTestSkill(t, env, token, "languages", "TypeScript")
	createTestSkill(t, env, token, "tools", "Docker")

	rec := env.request(t, http.MethodGet, "/skills", nil, "")
	wantStatus(t, rec, http.StatusOK)

	var grouped map[string][]string
	decodeData(t, rec, &grouped)
	if len(grouped["languages"]) != 2 {
		t.Errorf("languages = %v, want 2 entries", grouped["languages"])
	}
	if len(grouped["tools"]) != 1 {
		t.Errorf("tools = %v, want 1 entry", grouped["tools"])
	}
}

func TestListSkillsRaw_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	createTestSkill(t, env, token, "languages", "Go")

	anon := env.request(t, http.MethodGet, "/skills/raw", nil, "")
	wantStatus(t, anon, http.StatusUnauthorized)

	admin := env.request(t, http.MethodGet, "/skills/raw", nil, token)
	wantStatus(t, admin, http.StatusOK)

	var list []SkillResponse
	decodeData(t, admin, &list)
	if len(list) != 1 || list[0].Name != "Go" {
		t.Errorf("raw list = %+v, want one Go entry", list)
	}
}

func TestReplaceSkillCategory(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	createTestSkill(t, env, token, "languages", "Go")
	createTestSkill(t, env, token, "languages", "PHP")
	createTestSkill(t, env, token, "tools", "Docker")

	rec := env.request(t, http.MethodPut, "/skills/category", ReplaceSkillCategoryRequest{
		Category: "languages",
		Skills:   []string{"Rust", "Zig"},
	}, token)
	wantStatus(t, rec, http.StatusOK)

	var grouped map[string][]string
	decodeData(t, rec, &grouped)
	want := []string{"Rust", "Zig"}
	if len(grouped["languages"]) != 2 {
		t.Fatalf("languages = %v, want %v", grouped["languages"], want)
	}
	for i, name := range want {
		if grouped["languages"][i] != name {
			t.Errorf("languages[%d] = %q, want %q", i, grouped["languages"][i], name)
		}
	}
	if len(grouped["tools"]) != 1 {
		t.Errorf("tools = %v, other categories must survive a replace", grouped["tools"])
	}
}

func TestUpdateSkill(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	created := createTestSkill(t, env, token, "languages", "Go")

	name := "Golang"
	rec := env.request(t, http.MethodPut, fmt.Sprintf("/skills/%d", created.ID),
		UpdateSkillRequest{Name: &name}, token)
	wantStatus(t, rec, http.StatusOK)

	var skill SkillResponse
	decodeData(t, rec, &skill)
	if skill.Name != "Golang" {
		t.Errorf("name = %q, want %q", skill.Name, "Golang")
	}
	if skill.Category != "languages" {
		t.Errorf("category = %q, untouched field changed", skill.Category)
	}
}

func TestDeleteSkill(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	created := createTestSkill(t, env, token, "languages", "Go")

	rec := env.request(t, http.MethodDelete, fmt.Sprintf("/skills/%d", created.ID), nil, token)
	wantStatus(t, rec, http.StatusOK)

	again := env.request(t, http.MethodDelete, fmt.Sprintf("/skills/%d", created.ID), nil, token)
	wantStatus(t, again, http.StatusNotFound)
}
