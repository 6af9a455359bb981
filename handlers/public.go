// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/inkpress/cliparse"
	"github.com/danielhkuo/inkpress/middleware"
	"github.com/danielhkuo/inkpress/models"
)

type PublicHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPublicHandler(db *sql.DB, cfg cliparse.Config) *PublicHandler {
	return &PublicHandler{db: db, cfg: cfg}
}

// ListPosts handles GET /posts
// Published posts only, newest first. An empty page is a normal 200
// with an empty array, not an error.
func (h *PublicHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page := ParsePage(r)

	var total int
	err := h.db.QueryRow(`
		SELECT COUNT(*) FROM post p WHERE ` + publishedOnly).Scan(&total)
	if err != nil {
		slog.Error("failed to count posts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT `+summaryColumns+`
		FROM post p
		LEFT JOIN category c ON p.category_id = c.id
		WHERE `+publishedOnly+`
		ORDER BY p.published_at DESC
		LIMIT $1 OFFSET $2
	`, models.PageSizeSmall, (page-1)*models.PageSizeSmall)
	if err != nil {
		slog.Error("failed to query posts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	posts, err := collectPostSummaries(rows)
	if err != nil {
		slog.Error("failed to scan posts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PostListResponse{
		Posts:      posts,
		Pagination: Paginate(page, models.PageSizeSmall, total),
	})
}

// ListPostsByCategory handles GET /posts/by-category
// Includes the category itself plus its direct children; grandchildren
// are deliberately not descended into.
func (h *PublicHandler) ListPostsByCategory(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}
	page := ParsePage(r)

	var categoryID string
	err := h.db.QueryRow(`
		SELECT id FROM category WHERE slug = $1
	`, slug).Scan(&categoryID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		slog.Error("failed to query category", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	const scope = `(p.category_id = $1 OR p.category_id IN (
		SELECT id FROM category WHERE parent_id = $1))`

	var total int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM post p WHERE `+publishedOnly+` AND `+scope, categoryID).Scan(&total)
	if err != nil {
		slog.Error("failed to count posts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT `+summaryColumns+`
		FROM post p
		LEFT JOIN category c ON p.category_id = c.id
		WHERE `+publishedOnly+` AND `+scope+`
		ORDER BY p.published_at DESC
		LIMIT $2 OFFSET $3
	`, categoryID, models.PageSizeSmall, (page-1)*models.PageSizeSmall)
	if err != nil {
		slog.Error("failed to query posts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	posts, err := collectPostSummaries(rows)
	if err != nil {
		slog.Error("failed to scan posts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PostListResponse{
		Posts:      posts,
		Pagination: Paginate(page, models.PageSizeSmall, total),
	})
}

// SearchPosts handles GET /posts/search
// Case-insensitive substring match on title, description, or category
// name. No ranking; ordering stays published_at descending.
func (h *PublicHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("s")
	if term == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "s is required")
		return
	}
	page := ParsePage(r)
	pattern := "%" + term + "%"

	const match = `(p.title ILIKE $1 OR p.description ILIKE $1 OR c.name ILIKE $1)`

	var total int
	err := h.db.QueryRow(`
		SELECT COUNT(*)
		FROM post p
		LEFT JOIN category c ON p.category_id = c.id
		WHERE `+publishedOnly+` AND `+match, pattern).Scan(&total)
	if err != nil {
		slog.Error("failed to count search results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT `+summaryColumns+`
		FROM post p
		LEFT JOIN category c ON p.category_id = c.id
		WHERE `+publishedOnly+` AND `+match+`
		ORDER BY p.published_at DESC
		LIMIT $2 OFFSET $3
	`, pattern, models.PageSizeLarge, (page-1)*models.PageSizeLarge)
	if err != nil {
		slog.Error("failed to query search results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	posts, err := collectPostSummaries(rows)
	if err != nil {
		slog.Error("failed to scan posts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PostListResponse{
		Posts:      posts,
		Pagination: Paginate(page, models.PageSizeLarge, total),
	})
}

// GetPost handles GET /posts/{slug}
// Published posts only. Records a view for the effective client IP as a
// side effect; a failed recording is logged but never fails the read.
func (h *PublicHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	row := h.db.QueryRow(`
		SELECT `+detailColumns+`
		FROM post p
		LEFT JOIN category c ON p.category_id = c.id
		WHERE p.slug = $1 AND `+publishedOnly, slug)

	post, err := scanPostDetail(row)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		slog.Error("failed to query post", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	ip := middleware.GetClientIP(r)
	total, counted, err := RecordView(h.db, post.ID, ip)
	if err != nil {
		slog.Warn("failed to record view", "error", err, "post_id", post.ID)
	} else if counted {
		post.ViewCount = total
	}

	middleware.JSONResponse(w, http.StatusOK, models.PostDetailResponse{Post: post})
}
