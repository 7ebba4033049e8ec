// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/portfolio-go/internal/middleware"
)

// Login attempts allowed per IP: a small burst, refilling one attempt
// every 12 seconds.
const (
	loginRateLimitRPS   = 1.0 / 12.0
	loginRateLimitBurst = 5
)

// Routes builds the /api router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	requireAdmin := func(r chi.Router) chi.Router {
		return r.With(middleware.RequireAuth(h.tokens, h.store), middleware.RequireAdmin())
	}

	r.Get("/health", h.Health)

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.LoginRateLimit(loginRateLimitRPS, loginRateLimitBurst)).
			Post("/login", h.Login)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.tokens, h.store))
			r.Get("/me", h.Me)
			r.Post("/change-password", h.ChangePassword)
			r.Post("/refresh", h.Refresh)
		})
	})

	r.Route("/articles", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(h.tokens, h.store))
			r.Get("/", h.ListArticles)
			r.Get("/{slug}", h.GetArticle)
		})
		admin := requireAdmin(r)
		admin.Post("/", h.CreateArticle)
		admin.Put("/{id}", h.UpdateArticle)
		admin.Delete("/{id}", h.DeleteArticle)
		admin.Patch("/{id}/publish", h.PublishArticle)
	})

	r.Route("/experiences", func(r chi.Router) {
		r.Get("/", h.ListExperiences)
		admin := requireAdmin(r)
		admin.Post("/", h.CreateExperience)
		admin.Post("/reorder", h.ReorderExperiences)
		admin.Put("/{id}", h.UpdateExperience)
		admin.Delete("/{id}", h.DeleteExperience)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.ListProjects)
		admin := requireAdmin(r)
		admin.Get("/next-id", h.NextProjectID)
		r.Get("/{id}", h.GetProject)
		admin.Post("/", h.CreateProject)
		admin.Post("/reorder", h.ReorderProjects)
		admin.Put("/{id}", h.UpdateProject)
		admin.Delete("/{id}", h.DeleteProject)
	})

	r.Route("/skills", func(r chi.Router) {
		r.Get("/", h.ListSkills)
		admin := requireAdmin(r)
		admin.Get("/raw", h.ListSkillsRaw)
		admin.Post("/", h.CreateSkill)
		admin.Put("/category", h.ReplaceSkillCategory)
		admin.Put("/{id}", h.UpdateSkill)
		admin.Delete("/{id}", h.DeleteSkill)
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.GetAllSettings)
		r.Get("/{key}", h.GetSetting)
		admin := requireAdmin(r)
		admin.Put("/", h.UpdateSettings)
		admin.Delete("/{key}", h.DeleteSetting)
	})

	r.Route("/uploads", func(r chi.Router) {
		admin := requireAdmin(r)
		admin.Get("/", h.ListUploads)
		admin.Post("/", h.Upload)
		admin.Delete("/{filename}", h.DeleteUpload)
	})

	return r
}
