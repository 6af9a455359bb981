// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/danielhkuo/inkpress/auth"
	"github.com/danielhkuo/inkpress/cliparse"
	"github.com/danielhkuo/inkpress/middleware"
	"github.com/danielhkuo/inkpress/models"
)

type PostHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPostHandler(db *sql.DB, cfg cliparse.Config) *PostHandler {
	return &PostHandler{db: db, cfg: cfg}
}

// CreatePost handles POST /author/posts
// Inserts an empty draft owned by the caller; every field starts at its
// default and is filled in later via UpdatePost.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	authorID, ok := RequireAuthor(h.db, h.cfg, w, r)
	if !ok {
		return
	}

	postID := auth.NewID()
	slug := auth.NewID() // placeholder until the author renames it

	_, err := h.db.Exec(`
		INSERT INTO post (id, slug, author_id)
		VALUES ($1, $2, $3)
	`, postID, slug, authorID)

	if err != nil {
		slog.Error("failed to insert post", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	slog.Info("post created", "post_id", postID, "author_id", authorID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePostResponse{
		PostID: postID,
		Slug:   slug,
	})
}

// UpdatePost handles PUT /author/posts
// Partial update over multipart form fields. The post is addressed by
// the required "slug" field; any other field that is absent or empty is
// left untouched. All applied fields persist as one UPDATE.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	authorID, ok := RequireAuthor(h.db, h.cfg, w, r)
	if !ok {
		return
	}

	if err := parseFormBody(r); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	slug, _ := middleware.FormValue(r, "slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	// Resolve the post and gate on ownership before touching anything
	var postID, ownerID string
	err := h.db.QueryRow(`
		SELECT id, author_id FROM post WHERE slug = $1
	`, slug).Scan(&postID, &ownerID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		slog.Error("failed to query post", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if ownerID != authorID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not the post author")
		return
	}

	// Collect the fields to apply
	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if v, ok := middleware.FormValue(r, "title"); ok && v != "" {
		add("title", v)
	}
	if v, ok := middleware.FormValue(r, "new_slug"); ok && v != "" {
		newSlug := auth.Slugify(v)
		if newSlug == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "new_slug has no usable characters")
			return
		}
		add("slug", newSlug)
	}
	if v, ok := middleware.FormValue(r, "description"); ok && v != "" {
		add("description", v)
	}
	if v, ok := middleware.FormValue(r, "time_read"); ok && v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "time_read must be a non-negative integer")
			return
		}
		add("time_read", minutes)
	}
	if v, ok := middleware.FormValue(r, "content"); ok && v != "" {
		add("content", v)
	}
	if v, ok := middleware.FormValue(r, "category"); ok && v != "" {
		var categoryID string
		err := h.db.QueryRow(`
			SELECT id FROM category WHERE id = $1 OR slug = $1
		`, v).Scan(&categoryID)
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusNotFound, "Category not found")
			return
		}
		if err != nil {
			slog.Error("failed to query category", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		add("category_id", categoryID)
	}
	if v, ok := middleware.FormValue(r, "thumbnail"); ok && v != "" {
		add("thumbnail", v)
	}

	if len(sets) == 0 {
		// Nothing to change is not an error
		middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: "Post updated"})
		return
	}

	args = append(args, postID)
	query := "UPDATE post SET " + strings.Join(sets, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args))

	_, err = h.db.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			// Renamed onto another post's slug; nothing was written
			middleware.ErrorResponse(w, http.StatusConflict, "Slug already in use")
			return
		}
		slog.Error("failed to update post", "error", err, "post_id", postID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update post")
		return
	}

	slog.Info("post updated", "post_id", postID, "fields", len(sets))

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: "Post updated"})
}

// PublishPost handles PUT /author/posts/{slug}/publish
// Idempotent; published_at is set at creation and never touched here.
func (h *PostHandler) PublishPost(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.StatusPublished, "Post published")
}

// DraftPost handles PUT /author/posts/{slug}/draft
func (h *PostHandler) DraftPost(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.StatusDraft, "Post moved to draft")
}

func (h *PostHandler) setStatus(w http.ResponseWriter, r *http.Request, status, success string) {
	authorID, ok := RequireAuthor(h.db, h.cfg, w, r)
	if !ok {
		return
	}

	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	postID, ok := h.resolveOwnedPost(w, slug, authorID)
	if !ok {
		return
	}

	_, err := h.db.Exec(`
		UPDATE post SET status = $1 WHERE id = $2
	`, status, postID)

	if err != nil {
		slog.Error("failed to update post status", "error", err, "post_id", postID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update post")
		return
	}

	slog.Info("post status changed", "post_id", postID, "status", status)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: success})
}

// DeletePost handles DELETE /author/posts/{slug}
// View records cascade away with the post.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	authorID, ok := RequireAuthor(h.db, h.cfg, w, r)
	if !ok {
		return
	}

	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	postID, ok := h.resolveOwnedPost(w, slug, authorID)
	if !ok {
		return
	}

	_, err := h.db.Exec(`DELETE FROM post WHERE id = $1`, postID)
	if err != nil {
		slog.Error("failed to delete post", "error", err, "post_id", postID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	slog.Info("post deleted", "post_id", postID, "author_id", authorID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: "Post deleted"})
}

// ListMyPosts handles GET /author/posts
// The author's own dashboard: every status, small pages.
func (h *PostHandler) ListMyPosts(w http.ResponseWriter, r *http.Request) {
	authorID, ok := RequireAuthor(h.db, h.cfg, w, r)
	if !ok {
		return
	}

	page := ParsePage(r)

	var total int
	err := h.db.QueryRow(`
		SELECT COUNT(*) FROM post WHERE author_id = $1
	`, authorID).Scan(&total)
	if err != nil {
		slog.Error("failed to count posts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT `+summaryColumns+`
		FROM post p
		LEFT JOIN category c ON p.category_id = c.id
		WHERE p.author_id = $1
		ORDER BY p.published_at DESC
		LIMIT $2 OFFSET $3
	`, authorID, models.PageSizeSmall, (page-1)*models.PageSizeSmall)
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

// GetMyPost handles GET /author/posts/{slug}
// Any status, owner only, no view-count side effect.
func (h *PostHandler) GetMyPost(w http.ResponseWriter, r *http.Request) {
	authorID, ok := RequireAuthor(h.db, h.cfg, w, r)
	if !ok {
		return
	}

	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	row := h.db.QueryRow(`
		SELECT `+detailColumns+`
		FROM post p
		LEFT JOIN category c ON p.category_id = c.id
		WHERE p.slug = $1 AND p.author_id = $2
	`, slug, authorID)

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

	middleware.JSONResponse(w, http.StatusOK, models.PostDetailResponse{Post: post})
}

// resolveOwnedPost looks up a post by slug and checks ownership,
// writing 404/403 itself when the check fails
func (h *PostHandler) resolveOwnedPost(w http.ResponseWriter, slug, authorID string) (string, bool) {
	var postID, ownerID string
	err := h.db.QueryRow(`
		SELECT id, author_id FROM post WHERE slug = $1
	`, slug).Scan(&postID, &ownerID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
		return "", false
	}
	if err != nil {
		slog.Error("failed to query post", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return "", false
	}

	if ownerID != authorID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not the post author")
		return "", false
	}

	return postID, true
}

// parseFormBody accepts either multipart (the editor sends files) or
// urlencoded bodies
func parseFormBody(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return r.ParseMultipartForm(32 << 20)
	}
	return r.ParseForm()
}
