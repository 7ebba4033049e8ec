// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API handlers for the portfolio backend.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/portfolio-go/internal/auth"
	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/service"
	"github.com/olegiv/portfolio-go/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	store  *store.Store
	media  *service.MediaService
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(st *store.Store, media *service.MediaService, tokens *auth.TokenManager, logger *slog.Logger) *Handler {
	return &Handler{
		store:  st,
		media:  media,
		tokens: tokens,
		logger: logger.With("component", "api"),
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteValidationError writes a 400 response with per-field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusBadRequest, "validation_error", "Validation failed", fieldErrors)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "conflict", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// writeStoreError maps a store failure to the matching HTTP response.
// notFoundMsg and conflictMsg name the entity for the user-facing message.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error, notFoundMsg, conflictMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteNotFound(w, notFoundMsg)
	case store.IsUniqueViolation(err):
		WriteConflict(w, conflictMsg)
	default:
		h.logger.Error("store operation failed", "error", err)
		WriteInternalError(w, "Internal server error")
	}
}

// decodeJSON decodes the request body into dst. On failure it writes a
// 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return false
	}
	return true
}

// parseIDParam extracts the numeric {id} URL parameter.
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// maxPageLimit caps caller-supplied page sizes.
const maxPageLimit = 100

// parsePagination reads 1-based page and limit query parameters,
// falling back to the given default limit.
func parsePagination(r *http.Request, defaultLimit int) (page, limit int) {
	page = 1
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// isAdmin reports whether the request carries authenticated admin claims.
func isAdmin(r *http.Request) bool {
	claims, ok := auth.ClaimsFromContext(r.Context())
	return ok && claims.Role == model.RoleAdmin
}

// paginationMeta converts store pagination into response metadata.
func paginationMeta(p store.Pagination) *Meta {
	return &Meta{
		Total: p.Total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: p.TotalPages,
	}
}

// HealthResponse contains service health information.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, HealthResponse{
		Status:  "ok",
		Version: "v1",
	}, nil)
}
