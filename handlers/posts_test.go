// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/inkpress/models"
	"github.com/danielhkuo/inkpress/testutil"
)

func TestCreatePost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewPostHandler(db, cfg)
	authorID, authorKey := testutil.CreateTestAuthor(t, db, cfg, "alice")

	t.Run("creates an empty draft with defaults", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/author/posts", nil, testutil.AuthorHeaders(authorID, authorKey))
		w := httptest.NewRecorder()
		handler.CreatePost(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.CreatePostResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.PostID == "" || resp.Slug == "" {
			t.Fatal("Expected non-empty post_id and slug")
		}

		var title, status, description string
		var viewCount int
		err := db.QueryRow(`
			SELECT title, status, description, view_count FROM post WHERE id = $1
		`, resp.PostID).Scan(&title, &status, &description, &viewCount)
		if err != nil {
			t.Fatalf("Failed to query post: %v", err)
		}
		if title != "New Post" {
			t.Errorf("Expected default title 'New Post', got %q", title)
		}
		if status != models.StatusDraft {
			t.Errorf("Expected draft status, got %q", status)
		}
		if description != "Enter a brief description here..." {
			t.Errorf("Unexpected default description: %q", description)
		}
		if viewCount != 0 {
			t.Errorf("Expected 0 views, got %d", viewCount)
		}
	})

	t.Run("rejects missing auth headers", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/author/posts", nil, nil)
		w := httptest.NewRecorder()
		handler.CreatePost(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("rejects a forged key", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/author/posts", nil, testutil.AuthorHeaders(authorID, "forged"))
		w := httptest.NewRecorder()
		handler.CreatePost(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestUpdatePost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewPostHandler(db, cfg)
	authorID, authorKey := testutil.CreateTestAuthor(t, db, cfg, "alice")
	otherID, otherKey := testutil.CreateTestAuthor(t, db, cfg, "mallory")
	categoryID := testutil.CreateTestCategory(t, db, "Tech", "tech", nil)

	headers := testutil.AuthorHeaders(authorID, authorKey)

	t.Run("applies only the provided field", func(t *testing.T) {
		postID := testutil.CreateTestPost(t, db, authorID, "first-post", models.StatusDraft, nil)

		req := testutil.MakeFormRequest("PUT", "/author/posts", map[string]string{
			"slug":  "first-post",
			"title": "A Better Title",
		}, headers)
		w := httptest.NewRecorder()
		handler.UpdatePost(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var title, description, content, slug string
		err := db.QueryRow(`
			SELECT title, description, content, slug FROM post WHERE id = $1
		`, postID).Scan(&title, &description, &content, &slug)
		if err != nil {
			t.Fatalf("Failed to query post: %v", err)
		}
		if title != "A Better Title" {
			t.Errorf("Expected updated title, got %q", title)
		}
		if description != "Enter a brief description here..." {
			t.Errorf("Description should be untouched, got %q", description)
		}
		if content != "Start writing your content here..." {
			t.Errorf("Content should be untouched, got %q", content)
		}
		if slug != "first-post" {
			t.Errorf("Slug should be untouched, got %q", slug)
		}
	})

	t.Run("applies several fields in one update", func(t *testing.T) {
		postID := testutil.CreateTestPost(t, db, authorID, "second-post", models.StatusDraft, nil)

		req := testutil.MakeFormRequest("PUT", "/author/posts", map[string]string{
			"slug":        "second-post",
			"title":       "Multi",
			"description": "A fuller description",
			"content":     "Body text",
			"time_read":   "7",
			"category":    categoryID,
			"thumbnail":   "media/second-post/cover.png",
		}, headers)
		w := httptest.NewRecorder()
		handler.UpdatePost(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var title, description, content, catID, thumbnail string
		var timeRead int
		err := db.QueryRow(`
			SELECT title, description, content, time_read, category_id, thumbnail
			FROM post WHERE id = $1
		`, postID).Scan(&title, &description, &content, &timeRead, &catID, &thumbnail)
		if err != nil {
			t.Fatalf("Failed to query post: %v", err)
		}
		if title != "Multi" || description != "A fuller description" || content != "Body text" {
			t.Errorf("Unexpected text fields: %q / %q / %q", title, description, content)
		}
		if timeRead != 7 {
			t.Errorf("Expected time_read 7, got %d", timeRead)
		}
		if catID != categoryID {
			t.Errorf("Expected category %s, got %s", categoryID, catID)
		}
		if thumbnail != "media/second-post/cover.png" {
			t.Errorf("Unexpected thumbnail: %q", thumbnail)
		}
	})

	t.Run("reslugifies new_slug", func(t *testing.T) {
		testutil.CreateTestPost(t, db, authorID, "old-slug", models.StatusDraft, nil)

		req := testutil.MakeFormRequest("PUT", "/author/posts", map[string]string{
			"slug":     "old-slug",
			"new_slug": "My Shiny Rename!",
		}, headers)
		w := httptest.NewRecorder()
		handler.UpdatePost(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM post WHERE slug = 'my-shiny-rename'`).Scan(&count); err != nil {
			t.Fatalf("Failed to query: %v", err)
		}
		if count != 1 {
			t.Error("Expected post under the slugified new slug")
		}
	})

	t.Run("slug collision is a conflict and changes nothing", func(t *testing.T) {
		testutil.CreateTestPost(t, db, authorID, "taken", models.StatusDraft, nil)
		postID := testutil.CreateTestPost(t, db, authorID, "renamer", models.StatusDraft, nil)

		req := testutil.MakeFormRequest("PUT", "/author/posts", map[string]string{
			"slug":     "renamer",
			"new_slug": "taken",
			"title":    "Should not land",
		}, headers)
		w := httptest.NewRecorder()
		handler.UpdatePost(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)

		var slug, title string
		if err := db.QueryRow(`SELECT slug, title FROM post WHERE id = $1`, postID).Scan(&slug, &title); err != nil {
			t.Fatalf("Failed to query post: %v", err)
		}
		if slug != "renamer" {
			t.Errorf("Slug should be unchanged after conflict, got %q", slug)
		}
		if title == "Should not land" {
			t.Error("Partial write observed after conflict")
		}
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		testutil.CreateTestPost(t, db, authorID, "needs-category", models.StatusDraft, nil)

		req := testutil.MakeFormRequest("PUT", "/author/posts", map[string]string{
			"slug":     "needs-category",
			"category": "no-such-category",
		}, headers)
		w := httptest.NewRecorder()
		handler.UpdatePost(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("non-owner is forbidden and post unchanged", func(t *testing.T) {
		postID := testutil.CreateTestPost(t, db, authorID, "owned", models.StatusDraft, nil)

		req := testutil.MakeFormRequest("PUT", "/author/posts", map[string]string{
			"slug":  "owned",
			"title": "Hijacked",
		}, testutil.AuthorHeaders(otherID, otherKey))
		w := httptest.NewRecorder()
		handler.UpdatePost(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)

		var title string
		if err := db.QueryRow(`SELECT title FROM post WHERE id = $1`, postID).Scan(&title); err != nil {
			t.Fatalf("Failed to query post: %v", err)
		}
		if title == "Hijacked" {
			t.Error("Non-owner update must not land")
		}
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		req := testutil.MakeFormRequest("PUT", "/author/posts", map[string]string{
			"slug":  "ghost",
			"title": "X",
		}, headers)
		w := httptest.NewRecorder()
		handler.UpdatePost(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("invalid time_read is rejected", func(t *testing.T) {
		testutil.CreateTestPost(t, db, authorID, "timed", models.StatusDraft, nil)

		req := testutil.MakeFormRequest("PUT", "/author/posts", map[string]string{
			"slug":      "timed",
			"time_read": "soon",
		}, headers)
		w := httptest.NewRecorder()
		handler.UpdatePost(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestPublishUnpublish(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewPostHandler(db, cfg)
	authorID, authorKey := testutil.CreateTestAuthor(t, db, cfg, "alice")
	otherID, otherKey := testutil.CreateTestAuthor(t, db, cfg, "mallory")

	postID := testutil.CreateTestPost(t, db, authorID, "lifecycle", models.StatusDraft, nil)

	var before time.Time
	if err := db.QueryRow(`SELECT published_at FROM post WHERE id = $1`, postID).Scan(&before); err != nil {
		t.Fatalf("Failed to query published_at: %v", err)
	}

	publish := func(t *testing.T, headers map[string]string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("PUT", "/author/posts/lifecycle/publish", nil, headers)
		req.SetPathValue("slug", "lifecycle")
		w := httptest.NewRecorder()
		handler.PublishPost(w, req)
		return w
	}
	draft := func(t *testing.T, headers map[string]string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("PUT", "/author/posts/lifecycle/draft", nil, headers)
		req.SetPathValue("slug", "lifecycle")
		w := httptest.NewRecorder()
		handler.DraftPost(w, req)
		return w
	}

	t.Run("publish", func(t *testing.T) {
		w := publish(t, testutil.AuthorHeaders(authorID, authorKey))
		testutil.AssertStatus(t, w, http.StatusOK)
		if got := testutil.PostStatus(t, db, postID); got != models.StatusPublished {
			t.Errorf("Expected published, got %q", got)
		}
	})

	t.Run("publish is idempotent", func(t *testing.T) {
		w := publish(t, testutil.AuthorHeaders(authorID, authorKey))
		testutil.AssertStatus(t, w, http.StatusOK)
		if got := testutil.PostStatus(t, db, postID); got != models.StatusPublished {
			t.Errorf("Expected published, got %q", got)
		}
	})

	t.Run("unpublish returns to draft", func(t *testing.T) {
		w := draft(t, testutil.AuthorHeaders(authorID, authorKey))
		testutil.AssertStatus(t, w, http.StatusOK)
		if got := testutil.PostStatus(t, db, postID); got != models.StatusDraft {
			t.Errorf("Expected draft, got %q", got)
		}
	})

	t.Run("published_at never moves", func(t *testing.T) {
		var after time.Time
		if err := db.QueryRow(`SELECT published_at FROM post WHERE id = $1`, postID).Scan(&after); err != nil {
			t.Fatalf("Failed to query published_at: %v", err)
		}
		if !after.Equal(before) {
			t.Errorf("published_at changed across transitions: %v -> %v", before, after)
		}
	})

	t.Run("non-owner transitions are forbidden", func(t *testing.T) {
		w := publish(t, testutil.AuthorHeaders(otherID, otherKey))
		testutil.AssertStatus(t, w, http.StatusForbidden)
		if got := testutil.PostStatus(t, db, postID); got != models.StatusDraft {
			t.Errorf("Status must be unchanged, got %q", got)
		}
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/author/posts/ghost/publish", nil, testutil.AuthorHeaders(authorID, authorKey))
		req.SetPathValue("slug", "ghost")
		w := httptest.NewRecorder()
		handler.PublishPost(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewPostHandler(db, cfg)
	authorID, authorKey := testutil.CreateTestAuthor(t, db, cfg, "alice")
	otherID, otherKey := testutil.CreateTestAuthor(t, db, cfg, "mallory")

	t.Run("delete cascades view records", func(t *testing.T) {
		postID := testutil.CreateTestPost(t, db, authorID, "doomed", models.StatusPublished, nil)
		testutil.AddTestView(t, db, postID, "203.0.113.1")
		testutil.AddTestView(t, db, postID, "203.0.113.2")

		req := testutil.MakeRequest("DELETE", "/author/posts/doomed", nil, testutil.AuthorHeaders(authorID, authorKey))
		req.SetPathValue("slug", "doomed")
		w := httptest.NewRecorder()
		handler.DeletePost(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var posts, views int
		if err := db.QueryRow(`SELECT COUNT(*) FROM post WHERE id = $1`, postID).Scan(&posts); err != nil {
			t.Fatalf("Failed to count posts: %v", err)
		}
		if err := db.QueryRow(`SELECT COUNT(*) FROM post_view WHERE post_id = $1`, postID).Scan(&views); err != nil {
			t.Fatalf("Failed to count views: %v", err)
		}
		if posts != 0 {
			t.Error("Post should be deleted")
		}
		if views != 0 {
			t.Errorf("Expected no orphan view rows, found %d", views)
		}
	})

	t.Run("non-owner delete is forbidden", func(t *testing.T) {
		testutil.CreateTestPost(t, db, authorID, "sturdy", models.StatusDraft, nil)

		req := testutil.MakeRequest("DELETE", "/author/posts/sturdy", nil, testutil.AuthorHeaders(otherID, otherKey))
		req.SetPathValue("slug", "sturdy")
		w := httptest.NewRecorder()
		handler.DeletePost(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM post WHERE slug = 'sturdy'`).Scan(&count); err != nil {
			t.Fatalf("Failed to count posts: %v", err)
		}
		if count != 1 {
			t.Error("Post must survive a forbidden delete")
		}
	})
}

func TestAuthorDashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewPostHandler(db, cfg)
	authorID, authorKey := testutil.CreateTestAuthor(t, db, cfg, "alice")
	otherID, _ := testutil.CreateTestAuthor(t, db, cfg, "bob")

	testutil.CreateTestPost(t, db, authorID, "mine-draft", models.StatusDraft, nil)
	testutil.CreateTestPost(t, db, authorID, "mine-live", models.StatusPublished, nil)
	testutil.CreateTestPost(t, db, otherID, "theirs", models.StatusPublished, nil)

	t.Run("list shows own posts of any status", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/author/posts", nil, testutil.AuthorHeaders(authorID, authorKey))
		w := httptest.NewRecorder()
		handler.ListMyPosts(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PostListResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Posts) != 2 {
			t.Fatalf("Expected 2 posts, got %d", len(resp.Posts))
		}
		for _, p := range resp.Posts {
			if p.Slug == "theirs" {
				t.Error("Another author's post leaked into the dashboard")
			}
		}
		if resp.Pagination.PageSize != models.PageSizeSmall {
			t.Errorf("Expected small pages, got %d", resp.Pagination.PageSize)
		}
	})

	t.Run("own detail works for drafts", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/author/posts/mine-draft", nil, testutil.AuthorHeaders(authorID, authorKey))
		req.SetPathValue("slug", "mine-draft")
		w := httptest.NewRecorder()
		handler.GetMyPost(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PostDetailResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Post.Slug != "mine-draft" || resp.Post.Status != models.StatusDraft {
			t.Errorf("Unexpected post: %+v", resp.Post)
		}
	})

	t.Run("detail hides other authors' posts", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/author/posts/theirs", nil, testutil.AuthorHeaders(authorID, authorKey))
		req.SetPathValue("slug", "theirs")
		w := httptest.NewRecorder()
		handler.GetMyPost(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("own detail records no view", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/author/posts/mine-live", nil, testutil.AuthorHeaders(authorID, authorKey))
		req.SetPathValue("slug", "mine-live")
		w := httptest.NewRecorder()
		handler.GetMyPost(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var postID string
		if err := db.QueryRow(`SELECT id FROM post WHERE slug = 'mine-live'`).Scan(&postID); err != nil {
			t.Fatalf("Failed to query post: %v", err)
		}
		if cached, rows := testutil.ViewCount(t, db, postID); cached != 0 || rows != 0 {
			t.Errorf("Author detail must not count views, got cached=%d rows=%d", cached, rows)
		}
	})
}
