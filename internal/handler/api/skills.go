// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/store"
)

// SkillResponse represents a single skill row in API responses.
type SkillResponse struct {
	ID        int64  `json:"id"`
	Category  string `json:"category"`
	Name      string `json:"name"`
	SortOrder int64  `json:"sort_order"`
}

// CreateSkillRequest represents the request body for creating a skill.
type CreateSkillRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

// UpdateSkillRequest represents the request body for updating a skill.
// Absent fields are left untouched.
type UpdateSkillRequest struct {
	Category  *string `json:"category,omitempty"`
	Name      *string `json:"name,omitempty"`
	SortOrder *int64  `json:"sort_order,omitempty"`
}

// ReplaceSkillCategoryRequest represents the request body for replacing
// every skill of one category.
type ReplaceSkillCategoryRequest struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

func storeSkillToResponse(s model.Skill) SkillResponse {
	return SkillResponse{
		ID:        s.ID,
		Category:  s.Category,
		Name:      s.Name,
		SortOrder: s.SortOrder,
	}
}

// ListSkills returns skill names grouped by category.
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.store.ListSkills(r.Context())
	if err != nil {
		h.logger.Error("listing skills failed", "error", err)
		WriteInternalError(w, "Failed to list skills")
		return
	}

	WriteSuccess(w, grouped, nil)
}

// ListSkillsRaw returns every skill row with IDs and sort order, for the
// admin editing UI.
func (h *Handler) ListSkillsRaw(w http.ResponseWriter, r *http.Request) {
	skills, err := h.store.ListSkillsRaw(r.Context())
	if err != nil {
		h.logger.Error("listing skills failed", "error", err)
		WriteInternalError(w, "Failed to list skills")
		return
	}

	responses := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		responses = append(responses, storeSkillToResponse(s))
	}

	WriteSuccess(w, responses, nil)
}

// CreateSkill creates a skill at the end of its category's display order.
func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var req CreateSkillRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := make(map[string]string)
	if req.Category == "" {
		fieldErrors["category"] = "Category is required"
	}
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	skill, err := h.store.CreateSkill(r.Context(), store.CreateSkillParams{
		Category: req.Category,
		Name:     req.Name,
	})
	if err != nil {
		h.writeStoreError(w, err, "Skill not found", "")
		return
	}

	WriteCreated(w, storeSkillToResponse(skill))
}

// ReplaceSkillCategory replaces every skill of one category with the
// given names, in the given order. An empty list clears the category.
func (h *Handler) ReplaceSkillCategory(w http.ResponseWriter, r *http.Request) {
	var req ReplaceSkillCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Category == "" {
		WriteValidationError(w, map[string]string{"category": "Category is required"})
		return
	}

	grouped, err := h.store.ReplaceSkillCategory(r.Context(), req.Category, req.Skills)
	if err != nil {
		h.logger.Error("replacing skill category failed", "error", err)
		WriteInternalError(w, "Failed to replace skill category")
		return
	}

	WriteSuccess(w, grouped, nil)
}

// UpdateSkill applies a partial update to a skill.
func (h *Handler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid skill ID", nil)
		return
	}

	var req UpdateSkillRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	skill, err := h.store.UpdateSkill(r.Context(), id, store.UpdateSkillParams{
		Category:  req.Category,
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.writeStoreError(w, err, "Skill not found", "")
		return
	}

	WriteSuccess(w, storeSkillToResponse(skill), nil)
}

// DeleteSkill removes a skill.
func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid skill ID", nil)
		return
	}

	if err := h.store.DeleteSkill(r.Context(), id); err != nil {
		h.writeStoreError(w, err, "Skill not found", "")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Skill deleted"}, nil)
}
