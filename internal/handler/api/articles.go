// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/store"
)

// ArticleResponse represents an article in API responses.
type ArticleResponse struct {
	ID          int64                `json:"id"`
	Slug        string               `json:"slug"`
	Title       string               `json:"title"`
	Excerpt     string               `json:"excerpt"`
	Content     []model.ContentBlock `json:"content"`
	CoverImage  string               `json:"cover_image"`
	Tags        []string             `json:"tags"`
	IsPublished bool                 `json:"is_published"`
	PublishedAt *time.Time           `json:"published_at,omitempty"`
	Views       int64                `json:"views"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// CreateArticleRequest represents the request body for creating an article.
type CreateArticleRequest struct {
	Title       string               `json:"title"`
	Slug        string               `json:"slug"`
	Excerpt     string               `json:"excerpt"`
	Content     []model.ContentBlock `json:"content"`
	CoverImage  string               `json:"cover_image"`
	Tags        []string             `json:"tags"`
	IsPublished bool                 `json:"is_published"`
}

// UpdateArticleRequest represents the request body for updating an article.
// Absent fields are left untouched.
type UpdateArticleRequest struct {
	Title       *string               `json:"title,omitempty"`
	Slug        *string               `json:"slug,omitempty"`
	Excerpt     *string               `json:"excerpt,omitempty"`
	Content     *[]model.ContentBlock `json:"content,omitempty"`
	CoverImage  *string               `json:"cover_image,omitempty"`
	Tags        *[]string             `json:"tags,omitempty"`
	IsPublished *bool                 `json:"is_published,omitempty"`
}

// storeArticleToResponse converts a model.Article to ArticleResponse.
func storeArticleToResponse(a model.Article) ArticleResponse {
	resp := ArticleResponse{
		ID:          a.ID,
		Slug:        a.Slug,
		Title:       a.Title,
		Content:     a.Content,
		Tags:        a.Tags,
		IsPublished: a.IsPublished,
		Views:       a.Views,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Excerpt.Valid {
		resp.Excerpt = a.Excerpt.String
	}
	if a.CoverImage.Valid {
		resp.CoverImage = a.CoverImage.String
	}
	if a.PublishedAt.Valid {
		t := a.PublishedAt.Time
		resp.PublishedAt = &t
	}
	return resp
}

// ListArticles returns a page of articles. Anonymous callers see
// published articles only; admins see everything.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, store.DefaultArticlePageSize)

	result, err := h.store.ListArticles(r.Context(), store.ListArticlesOptions{
		Page:          page,
		Limit:         limit,
		PublishedOnly: !isAdmin(r),
	})
	if err != nil {
		h.logger.Error("listing articles failed", "error", err)
		WriteInternalError(w, "Failed to list articles")
		return
	}

	responses := make([]ArticleResponse, 0, len(result.Articles))
	for _, a := range result.Articles {
		responses = append(responses, storeArticleToResponse(a))
	}

	WriteSuccess(w, responses, paginationMeta(result.Pagination))
}

// GetArticle returns a single article by slug. Unpublished articles are
// hidden from non-admins; non-admin reads count as a view.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := h.store.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		h.writeStoreError(w, err, "Article not found", "")
		return
	}

	admin := isAdmin(r)
	if !article.IsPublished && !admin {
		WriteNotFound(w, "Article not found")
		return
	}

	if !admin {
		if err := h.store.IncrementArticleViews(r.Context(), article.ID); err != nil {
			h.logger.Warn("view increment failed", "slug", slug, "error", err)
		} else {
			article.Views++
		}
	}

	WriteSuccess(w, storeArticleToResponse(article), nil)
}

// CreateArticle creates a new article.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := make(map[string]string)
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if err := model.ValidateContent(req.Content); err != nil {
		fieldErrors["content"] = err.Error()
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	article, err := h.store.CreateArticle(r.Context(), store.CreateArticleParams{
		Title:       req.Title,
		Slug:        req.Slug,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		h.writeStoreError(w, err, "Article not found", "An article with this slug already exists")
		return
	}

	WriteCreated(w, storeArticleToResponse(article))
}

// UpdateArticle applies a partial update to an article.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid article ID", nil)
		return
	}

	var req UpdateArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := make(map[string]string)
	if req.Title != nil && *req.Title == "" {
		fieldErrors["title"] = "Title cannot be empty"
	}
	if req.Content != nil {
		if err := model.ValidateContent(*req.Content); err != nil {
			fieldErrors["content"] = err.Error()
		}
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	article, err := h.store.UpdateArticle(r.Context(), id, store.UpdateArticleParams{
		Title:       req.Title,
		Slug:        req.Slug,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		h.writeStoreError(w, err, "Article not found", "An article with this slug already exists")
		return
	}

	WriteSuccess(w, storeArticleToResponse(article), nil)
}

// DeleteArticle removes an article.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid article ID", nil)
		return
	}

	if err := h.store.DeleteArticle(r.Context(), id); err != nil {
		h.writeStoreError(w, err, "Article not found", "")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Article deleted"}, nil)
}

// PublishArticleRequest represents the request body for the publish toggle.
type PublishArticleRequest struct {
	IsPublished *bool `json:"is_published,omitempty"`
}

// PublishArticle toggles an article's published state. An empty body
// publishes; {"is_published": false} unpublishes. The first publish
// stamps published_at and further publishes keep it.
func (h *Handler) PublishArticle(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid article ID", nil)
		return
	}

	published := true
	if r.ContentLength > 0 {
		var req PublishArticleRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.IsPublished != nil {
			published = *req.IsPublished
		}
	}

	article, err := h.store.UpdateArticle(r.Context(), id, store.UpdateArticleParams{
		IsPublished: &published,
	})
	if err != nil {
		h.writeStoreError(w, err, "Article not found", "")
		return
	}

	WriteSuccess(w, storeArticleToResponse(article), nil)
}
