// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/lib/pq"

	"github.com/danielhkuo/inkpress/auth"
	"github.com/danielhkuo/inkpress/cliparse"
	"github.com/danielhkuo/inkpress/middleware"
	"github.com/danielhkuo/inkpress/models"
)

type CategoryHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCategoryHandler(db *sql.DB, cfg cliparse.Config) *CategoryHandler {
	return &CategoryHandler{db: db, cfg: cfg}
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, slug, parent_id
		FROM category
		ORDER BY name
	`)
	if err != nil {
		slog.Error("failed to query categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		var parentID sql.NullString
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &parentID); err != nil {
			slog.Error("failed to scan category", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if parentID.Valid {
			cat.ParentID = &parentID.String
		}
		categories = append(categories, cat)
	}

	middleware.JSONResponse(w, http.StatusOK, models.CategoryListResponse{
		Categories: categories,
	})
}

// CreateCategory handles POST /categories
// The slug defaults to the slugified name; the optional parent is
// addressed by slug. One level of nesting is what listings honor.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if _, ok := RequireAuthor(h.db, h.cfg, w, r); !ok {
		return
	}

	var req models.CreateCategoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	slugSource := req.Slug
	if slugSource == "" {
		slugSource = req.Name
	}
	slug := auth.Slugify(slugSource)
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug has no usable characters")
		return
	}

	var parentID sql.NullString
	if req.Parent != "" {
		var id string
		err := h.db.QueryRow(`
			SELECT id FROM category WHERE slug = $1
		`, req.Parent).Scan(&id)
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusNotFound, "Parent category not found")
			return
		}
		if err != nil {
			slog.Error("failed to query parent category", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		parentID = sql.NullString{String: id, Valid: true}
	}

	categoryID := auth.NewID()
	_, err := h.db.Exec(`
		INSERT INTO category (id, name, slug, parent_id)
		VALUES ($1, $2, $3, $4)
	`, categoryID, req.Name, slug, parentID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			middleware.ErrorResponse(w, http.StatusConflict, "Category slug already in use")
			return
		}
		slog.Error("failed to insert category", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	slog.Info("category created", "category_id", categoryID, "slug", slug)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCategoryResponse{
		CategoryID: categoryID,
		Slug:       slug,
	})
}

// DeleteCategory handles DELETE /categories/{slug}
// Deleting a category still referenced by posts is refused; the FK is
// ON DELETE RESTRICT.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if _, ok := RequireAuthor(h.db, h.cfg, w, r); !ok {
		return
	}

	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

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

	_, err = h.db.Exec(`DELETE FROM category WHERE id = $1`, categoryID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			middleware.ErrorResponse(w, http.StatusConflict, "Category is referenced by posts")
			return
		}
		slog.Error("failed to delete category", "error", err, "category_id", categoryID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	slog.Info("category deleted", "category_id", categoryID, "slug", slug)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: "Category deleted"})
}
