// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/store"
)

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID          int64    `json:"id"`
	ProjectID   string   `json:"project_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Year        string   `json:"year"`
	Link        string   `json:"link"`
	ImageURL    string   `json:"image_url"`
	IsFeatured  bool     `json:"is_featured"`
	SortOrder   int64    `json:"sort_order"`
}

// CreateProjectRequest represents the request body for creating a project.
// An empty project_id is assigned the next value in the sequence.
type CreateProjectRequest struct {
	ProjectID   string   `json:"project_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Year        string   `json:"year"`
	Link        string   `json:"link"`
	ImageURL    string   `json:"image_url"`
	IsFeatured  bool     `json:"is_featured"`
}

// UpdateProjectRequest represents the request body for updating a project.
// Absent fields are left untouched.
type UpdateProjectRequest struct {
	ProjectID   *string   `json:"project_id,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tech        *[]string `json:"tech,omitempty"`
	Year        *string   `json:"year,omitempty"`
	Link        *string   `json:"link,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsFeatured  *bool     `json:"is_featured,omitempty"`
	SortOrder   *int64    `json:"sort_order,omitempty"`
}

// storeProjectToResponse converts a model.Project to ProjectResponse.
func storeProjectToResponse(p model.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:         p.ID,
		ProjectID:  p.ProjectID,
		Title:      p.Title,
		Tech:       p.Tech,
		IsFeatured: p.IsFeatured,
		SortOrder:  p.SortOrder,
	}
	if p.Description.Valid {
		resp.Description = p.Description.String
	}
	if p.Year.Valid {
		resp.Year = p.Year.String
	}
	if p.Link.Valid {
		resp.Link = p.Link.String
	}
	if p.ImageURL.Valid {
		resp.ImageURL = p.ImageURL.String
	}
	return resp
}

func projectsToResponses(projects []model.Project) []ProjectResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, storeProjectToResponse(p))
	}
	return responses
}

// ListProjects returns projects in display order. With ?featured=true
// only featured projects are returned.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	featuredOnly := r.URL.Query().Get("featured") == "true"

	projects, err := h.store.ListProjects(r.Context(), featuredOnly)
	if err != nil {
		h.logger.Error("listing projects failed", "error", err)
		WriteInternalError(w, "Failed to list projects")
		return
	}

	WriteSuccess(w, projectsToResponses(projects), nil)
}

// GetProject returns a single project. The URL parameter is either the
// internal numeric ID or the public zero-padded project ID.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")

	var (
		project model.Project
		err     error
	)
	if id, parseErr := strconv.ParseInt(param, 10, 64); parseErr == nil && param[0] != '0' {
		project, err = h.store.GetProjectByID(r.Context(), id)
	} else {
		project, err = h.store.GetProjectByProjectID(r.Context(), param)
	}
	if err != nil {
		h.writeStoreError(w, err, "Project not found", "")
		return
	}

	WriteSuccess(w, storeProjectToResponse(project), nil)
}

// NextProjectIDResponse contains the next free public project ID.
type NextProjectIDResponse struct {
	NextID string `json:"next_id"`
}

// NextProjectID returns the next value in the zero-padded project ID sequence.
func (h *Handler) NextProjectID(w http.ResponseWriter, r *http.Request) {
	next, err := h.store.NextProjectID(r.Context())
	if err != nil {
		h.logger.Error("next project ID lookup failed", "error", err)
		WriteInternalError(w, "Failed to compute next project ID")
		return
	}

	WriteSuccess(w, NextProjectIDResponse{NextID: next}, nil)
}

// CreateProject creates a new project at the end of the display order.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Title == "" {
		WriteValidationError(w, map[string]string{"title": "Title is required"})
		return
	}

	project, err := h.store.CreateProject(r.Context(), store.CreateProjectParams{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Tech:        req.Tech,
		Year:        req.Year,
		Link:        req.Link,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		h.writeStoreError(w, err, "Project not found", "A project with this project ID already exists")
		return
	}

	WriteCreated(w, storeProjectToResponse(project))
}

// UpdateProject applies a partial update to a project.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid project ID", nil)
		return
	}

	var req UpdateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	project, err := h.store.UpdateProject(r.Context(), id, store.UpdateProjectParams{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Tech:        req.Tech,
		Year:        req.Year,
		Link:        req.Link,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		h.writeStoreError(w, err, "Project not found", "A project with this project ID already exists")
		return
	}

	WriteSuccess(w, storeProjectToResponse(project), nil)
}

// DeleteProject removes a project.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid project ID", nil)
		return
	}

	if err := h.store.DeleteProject(r.Context(), id); err != nil {
		h.writeStoreError(w, err, "Project not found", "")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Project deleted"}, nil)
}

// ReorderProjects rewrites the display order from the given ID list.
// Projects omitted from the list keep their current position.
func (h *Handler) ReorderProjects(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		WriteValidationError(w, map[string]string{"ids": "At least one ID is required"})
		return
	}

	projects, err := h.store.ReorderProjects(r.Context(), req.IDs)
	if err != nil {
		h.writeStoreError(w, err, "Project not found", "")
		return
	}

	WriteSuccess(w, projectsToResponses(projects), nil)
}
