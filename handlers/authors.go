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

type AuthorHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthorHandler(db *sql.DB, cfg cliparse.Config) *AuthorHandler {
	return &AuthorHandler{db: db, cfg: cfg}
}

// Register handles POST /authors/register
// Creates an author and returns the HMAC capability key derived from
// the new ID. The key is never stored; it is re-derived on every
// authenticated request.
func (h *AuthorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterAuthorRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if len(req.Username) < 2 || len(req.Username) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-50 characters")
		return
	}

	authorID := auth.NewID()
	_, err := h.db.Exec(`
		INSERT INTO author (id, username)
		VALUES ($1, $2)
	`, authorID, req.Username)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
			return
		}
		slog.Error("failed to insert author", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register author")
		return
	}

	slog.Info("author registered", "author_id", authorID, "username", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterAuthorResponse{
		AuthorID:  authorID,
		AuthorKey: auth.GenerateAuthorKey(authorID, h.cfg.AuthorKeySalt),
		Username:  req.Username,
	})
}

// GetMe handles GET /authors/me
// Echoes the caller's identity and post count
func (h *AuthorHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	authorID, ok := RequireAuthor(h.db, h.cfg, w, r)
	if !ok {
		return
	}

	var resp models.AuthorMeResponse
	err := h.db.QueryRow(`
		SELECT a.id, a.username, a.created_at,
		       (SELECT COUNT(*) FROM post p WHERE p.author_id = a.id)
		FROM author a
		WHERE a.id = $1
	`, authorID).Scan(&resp.AuthorID, &resp.Username, &resp.CreatedAt, &resp.PostCount)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Author not found")
		return
	}
	if err != nil {
		slog.Error("failed to query author", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
