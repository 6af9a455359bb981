// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/inkpress/auth"
	"github.com/danielhkuo/inkpress/cliparse"
	"github.com/danielhkuo/inkpress/middleware"
	"github.com/danielhkuo/inkpress/models"
)

// publishedOnly is the visibility predicate applied by every public
// query path. Draft posts are invisible to anonymous callers no matter
// what else matches.
const publishedOnly = "p.status = 'published'"

// RequireAuthor authenticates an author from the X-Author-ID and
// X-Author-Key headers. It writes the error response itself and returns
// ok=false when the caller is not a known author. Authorization runs
// before any data is touched.
func RequireAuthor(db *sql.DB, cfg cliparse.Config, w http.ResponseWriter, r *http.Request) (string, bool) {
	authorID := r.Header.Get("X-Author-ID")
	authorKey := r.Header.Get("X-Author-Key")
	if authorID == "" || authorKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Author-ID and X-Author-Key headers required")
		return "", false
	}

	if err := auth.ValidateAuthorKey(authorID, authorKey, cfg.AuthorKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid author key")
		return "", false
	}

	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM author WHERE id = $1)
	`, authorID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query author", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return "", false
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown author")
		return "", false
	}

	return authorID, true
}

// ParsePage reads the page query parameter, defaulting to 1
func ParsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate builds list metadata for a page of pageSize over total rows
func Paginate(page, pageSize, total int) models.Pagination {
	totalPages := (total + pageSize - 1) / pageSize

	p := models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}
	if page > 1 {
		prev := page - 1
		p.PrevPage = &prev
	}
	if page < totalPages {
		next := page + 1
		p.NextPage = &next
	}
	return p
}

// summaryColumns is the SELECT list consumed by collectPostSummaries;
// queries using it must LEFT JOIN category c ON p.category_id = c.id
const summaryColumns = `
	p.id, p.title, p.slug, p.description, p.time_read,
	p.published_at, p.view_count, p.status, c.name, p.thumbnail`

func collectPostSummaries(rows *sql.Rows) ([]models.PostSummary, error) {
	defer rows.Close()

	posts := []models.PostSummary{}
	for rows.Next() {
		var s models.PostSummary
		var timeRead sql.NullInt64
		var categoryName, thumbnail sql.NullString

		if err := rows.Scan(
			&s.ID, &s.Title, &s.Slug, &s.Description, &timeRead,
			&s.PublishedAt, &s.ViewCount, &s.Status, &categoryName, &thumbnail,
		); err != nil {
			return nil, err
		}

		if timeRead.Valid {
			v := int(timeRead.Int64)
			s.TimeRead = &v
		}
		if categoryName.Valid {
			s.CategoryName = &categoryName.String
		}
		if thumbnail.Valid {
			s.Thumbnail = &thumbnail.String
		}
		s.PublishedDisplay = humanize.Time(s.PublishedAt)

		posts = append(posts, s)
	}

	return posts, rows.Err()
}

// detailColumns is the SELECT list consumed by scanPostDetail; queries
// using it must LEFT JOIN category c ON p.category_id = c.id
const detailColumns = `
	p.id, p.title, p.slug, p.author_id, p.description, p.content, p.time_read,
	p.published_at, p.view_count, p.status, p.thumbnail,
	c.id, c.name, c.slug, c.parent_id`

func scanPostDetail(row *sql.Row) (models.Post, error) {
	var post models.Post
	var timeRead sql.NullInt64
	var thumbnail sql.NullString
	var catID, catName, catSlug, catParent sql.NullString

	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.AuthorID, &post.Description,
		&post.Content, &timeRead, &post.PublishedAt, &post.ViewCount,
		&post.Status, &thumbnail,
		&catID, &catName, &catSlug, &catParent,
	)
	if err != nil {
		return models.Post{}, err
	}

	if timeRead.Valid {
		v := int(timeRead.Int64)
		post.TimeRead = &v
	}
	if thumbnail.Valid {
		post.Thumbnail = &thumbnail.String
	}
	if catID.Valid {
		cat := models.Category{
			ID:   catID.String,
			Name: catName.String,
			Slug: catSlug.String,
		}
		if catParent.Valid {
			cat.ParentID = &catParent.String
		}
		post.Category = &cat
	}

	return post, nil
}
