// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/store"
)

// ExperienceResponse represents a work history entry in API responses.
type ExperienceResponse struct {
	ID           int64    `json:"id"`
	Period       string   `json:"period"`
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Description  string   `json:"description"`
	Tech         []string `json:"tech"`
	IsCurrent    bool     `json:"is_current"`
	IsInternship bool     `json:"is_internship"`
	SortOrder    int64    `json:"sort_order"`
}

// CreateExperienceRequest represents the request body for creating an experience.
type CreateExperienceRequest struct {
	Period       string   `json:"period"`
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Description  string   `json:"description"`
	Tech         []string `json:"tech"`
	IsCurrent    bool     `json:"is_current"`
	IsInternship bool     `json:"is_internship"`
}

// UpdateExperienceRequest represents the request body for updating an
// experience. Absent fields are left untouched.
type UpdateExperienceRequest struct {
	Period       *string   `json:"period,omitempty"`
	Company      *string   `json:"company,omitempty"`
	Role         *string   `json:"role,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Tech         *[]string `json:"tech,omitempty"`
	IsCurrent    *bool     `json:"is_current,omitempty"`
	IsInternship *bool     `json:"is_internship,omitempty"`
	SortOrder    *int64    `json:"sort_order,omitempty"`
}

// ReorderRequest carries the wanted display order as a list of IDs.
type ReorderRequest struct {
	IDs []int64 `json:"ids"`
}

// storeExperienceToResponse converts a model.Experience to ExperienceResponse.
func storeExperienceToResponse(e model.Experience) ExperienceResponse {
	resp := ExperienceResponse{
		ID:           e.ID,
		Period:       e.Period,
		Company:      e.Company,
		Role:         e.Role,
		Tech:         e.Tech,
		IsCurrent:    e.IsCurrent,
		IsInternship: e.IsInternship,
		SortOrder:    e.SortOrder,
	}
	if e.Description.Valid {
		resp.Description = e.Description.String
	}
	return resp
}

func experiencesToResponses(experiences []model.Experience) []ExperienceResponse {
	responses := make([]ExperienceResponse, 0, len(experiences))
	for _, e := range experiences {
		responses = append(responses, storeExperienceToResponse(e))
	}
	return responses
}

// ListExperiences returns all experiences in display order.
func (h *Handler) ListExperiences(w http.ResponseWriter, r *http.Request) {
	experiences, err := h.store.ListExperiences(r.Context())
	if err != nil {
		h.logger.Error("listing experiences failed", "error", err)
		WriteInternalError(w, "Failed to list experiences")
		return
	}

	WriteSuccess(w, experiencesToResponses(experiences), nil)
}

// CreateExperience creates a new experience at the end of the display order.
func (h *Handler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	var req CreateExperienceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := make(map[string]string)
	if req.Period == "" {
		fieldErrors["period"] = "Period is required"
	}
	if req.Company == "" {
		fieldErrors["company"] = "Company is required"
	}
	if req.Role == "" {
		fieldErrors["role"] = "Role is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	experience, err := h.store.CreateExperience(r.Context(), store.CreateExperienceParams{
		Period:       req.Period,
		Company:      req.Company,
		Role:         req.Role,
		Description:  req.Description,
		Tech:         req.Tech,
		IsCurrent:    req.IsCurrent,
		IsInternship: req.IsInternship,
	})
	if err != nil {
		h.writeStoreError(w, err, "Experience not found", "")
		return
	}

	WriteCreated(w, storeExperienceToResponse(experience))
}

// UpdateExperience applies a partial update to an experience.
func (h *Handler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid experience ID", nil)
		return
	}

	var req UpdateExperienceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	experience, err := h.store.UpdateExperience(r.Context(), id, store.UpdateExperienceParams{
		Period:       req.Period,
		Company:      req.Company,
		Role:         req.Role,
		Description:  req.Description,
		Tech:         req.Tech,
		IsCurrent:    req.IsCurrent,
		IsInternship: req.IsInternship,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		h.writeStoreError(w, err, "Experience not found", "")
		return
	}

	WriteSuccess(w, storeExperienceToResponse(experience), nil)
}

// DeleteExperience removes an experience.
func (h *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid experience ID", nil)
		return
	}

	if err := h.store.DeleteExperience(r.Context(), id); err != nil {
		h.writeStoreError(w, err, "Experience not found", "")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Experience deleted"}, nil)
}

// ReorderExperiences rewrites the display order from the given ID list.
// Experiences omitted from the list keep their current position.
func (h *Handler) ReorderExperiences(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		WriteValidationError(w, map[string]string{"ids": "At least one ID is required"})
		return
	}

	experiences, err := h.store.ReorderExperiences(r.Context(), req.IDs)
	if err != nil {
		h.writeStoreError(w, err, "Experience not found", "")
		return
	}

	WriteSuccess(w, experiencesToResponses(experiences), nil)
}
