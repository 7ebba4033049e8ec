// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/olegiv/portfolio-go/internal/model"
	"github.com/olegiv/portfolio-go/internal/util"
)

// DefaultArticlePageSize is the page size used when the caller does not
// supply one.
const DefaultArticlePageSize = 10

// CreateArticleParams holds the fields for a new article.
type CreateArticleParams struct {
	Title       string
	Slug        string
	Excerpt     string
	Content     []model.ContentBlock
	CoverImage  string
	Tags        []string
	IsPublished bool
}

// UpdateArticleParams holds a partial update; nil fields are left untouched.
type UpdateArticleParams struct {
	Title       *string
	Slug        *string
	Excerpt     *string
	Content     *[]model.ContentBlock
	CoverImage  *string
	Tags        *[]string
	IsPublished *bool
}

// Pagination describes one page of a listed collection.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ArticlePage is one page of articles plus its pagination metadata.
type ArticlePage struct {
	Articles   []model.Article `json:"articles"`
	Pagination Pagination      `json:"pagination"`
}

// ListArticlesOptions filters and paginates ListArticles.
type ListArticlesOptions struct {
	Page          int
	Limit         int
	PublishedOnly bool
}

// CreateArticle inserts a new article. When no slug is supplied one is
// derived from the title with a time-derived suffix appended, which
// guarantees uniqueness without a collision-retry loop. A caller-supplied
// slug is sanitized and only suffixed when it collides with an existing one.
func (s *Store) CreateArticle(ctx context.Context, p CreateArticleParams) (model.Article, error) {
	slug, err := s.resolveSlug(ctx, p.Slug, p.Title)
	if err != nil {
		return model.Article{}, err
	}

	var publishedAt any
	if p.IsPublished {
		publishedAt = formatTime(time.Now())
	}

	res, err := s.Exec(ctx,
		`INSERT INTO articles (slug, title, excerpt, content, cover_image, tags, is_published, published_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		slug, p.Title, nullable(p.Excerpt), encodeContent(p.Content), nullable(p.CoverImage),
		encodeList(p.Tags), boolToInt(p.IsPublished), publishedAt)
	if err != nil {
		return model.Article{}, err
	}
	return s.GetArticleByID(ctx, res.LastInsertID)
}

// resolveSlug produces the final unique slug for a new article.
func (s *Store) resolveSlug(ctx context.Context, supplied, title string) (string, error) {
	if supplied != "" {
		slug := util.Slugify(supplied)
		if slug == "" {
			slug = "article"
		}
		exists, err := s.slugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if exists {
			slug = slug + "-" + util.UniqueSuffix()
		}
		return slug, nil
	}

	base := util.Slugify(title)
	if base == "" {
		base = "article"
	}
	return base + "-" + util.UniqueSuffix(), nil
}

func (s *Store) slugExists(ctx context.Context, slug string) (bool, error) {
	_, err := s.QueryOne(ctx, "SELECT id FROM articles WHERE slug = ?", slug)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetArticleByID fetches a single article by its internal id.
func (s *Store) GetArticleByID(ctx context.Context, id int64) (model.Article, error) {
	row, err := s.QueryOne(ctx, "SELECT * FROM articles WHERE id = ?", id)
	if err != nil {
		return model.Article{}, err
	}
	return articleFromRow(row), nil
}

// GetArticleBySlug fetches a single article by slug.
func (s *Store) GetArticleBySlug(ctx context.Context, slug string) (model.Article, error) {
	row, err := s.QueryOne(ctx, "SELECT * FROM articles WHERE slug = ?", slug)
	if err != nil {
		return model.Article{}, err
	}
	return articleFromRow(row), nil
}

// ListArticles returns one page of articles, newest first, with the total
// count computed under the same filter predicate.
func (s *Store) ListArticles(ctx context.Context, opts ListArticlesOptions) (ArticlePage, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = DefaultArticlePageSize
	}
	offset := (page - 1) * limit

	where := ""
	if opts.PublishedOnly {
		where = "WHERE is_published = 1"
	}

	rows, err := s.QueryAll(ctx,
		"SELECT * FROM articles "+where+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return ArticlePage{}, err
	}

	countRow, err := s.QueryOne(ctx, "SELECT COUNT(*) AS total FROM articles "+where)
	if err != nil {
		return ArticlePage{}, err
	}
	total := countRow.Int64("total")

	articles := make([]model.Article, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, articleFromRow(row))
	}

	return ArticlePage{
		Articles: articles,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		},
	}, nil
}

// UpdateArticle applies a partial update. Publishing is idempotent: the
// first transition to published stamps published_at, later updates never
// overwrite it.
func (s *Store) UpdateArticle(ctx context.Context, id int64, p UpdateArticleParams) (model.Article, error) {
	existing, err := s.GetArticleByID(ctx, id)
	if err != nil {
		return model.Article{}, err
	}

	set := []string{}
	args := []any{}
	appendSet := func(col string, val any) {
		set = append(set, col+" = ?")
		args = append(args, val)
	}

	if p.Title != nil {
		appendSet("title", *p.Title)
	}
	if p.Slug != nil {
		appendSet("slug", *p.Slug)
	}
	if p.Excerpt != nil {
		appendSet("excerpt", nullable(*p.Excerpt))
	}
	if p.Content != nil {
		appendSet("content", encodeContent(*p.Content))
	}
	if p.CoverImage != nil {
		appendSet("cover_image", nullable(*p.CoverImage))
	}
	if p.Tags != nil {
		appendSet("tags", encodeList(*p.Tags))
	}
	if p.IsPublished != nil {
		appendSet("is_published", boolToInt(*p.IsPublished))
		if *p.IsPublished && !existing.PublishedAt.Valid {
			appendSet("published_at", formatTime(time.Now()))
		}
	}

	if len(set) > 0 {
		set = append(set, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, id)
		if _, err := s.Exec(ctx, buildUpdate("articles", set), args...); err != nil {
			return model.Article{}, err
		}
	}

	return s.GetArticleByID(ctx, id)
}

// DeleteArticle removes an article. Returns ErrNotFound when the id does
// not exist.
func (s *Store) DeleteArticle(ctx context.Context, id int64) error {
	res, err := s.Exec(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementArticleViews bumps the view counter. Fire and forget: repeated
// views from the same visitor count repeatedly, and the snapshot flush is
// deferred so view bursts coalesce into one disk write.
func (s *Store) IncrementArticleViews(ctx context.Context, id int64) error {
	_, err := s.ExecDeferred(ctx, "UPDATE articles SET views = views + 1 WHERE id = ?", id)
	return err
}

func articleFromRow(r Row) model.Article {
	return model.Article{
		ID:          r.Int64("id"),
		Slug:        r.String("slug"),
		Title:       r.String("title"),
		Excerpt:     r.NullString("excerpt"),
		Content:     decodeContent(r.String("content")),
		CoverImage:  r.NullString("cover_image"),
		Tags:        r.StringList("tags"),
		IsPublished: r.Bool("is_published"),
		PublishedAt: r.NullTime("published_at"),
		Views:       r.Int64("views"),
		CreatedAt:   r.Time("created_at"),
		UpdatedAt:   r.Time("updated_at"),
	}
}

// encodeContent serializes content blocks for the text column.
func encodeContent(blocks []model.ContentBlock) string {
	if blocks == nil {
		blocks = []model.ContentBlock{}
	}
	data, _ := json.Marshal(blocks)
	return string(data)
}

// decodeContent parses a content column; malformed or absent JSON defaults
// to an empty list.
func decodeContent(s string) []model.ContentBlock {
	if s == "" {
		return []model.ContentBlock{}
	}
	var blocks []model.ContentBlock
	if err := json.Unmarshal([]byte(s), &blocks); err != nil || blocks == nil {
		return []model.ContentBlock{}
	}
	return blocks
}

// nullable maps the empty string to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func nullablePtr(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nullableInt(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}
