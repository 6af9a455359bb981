// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/inkpress/cliparse"
	"github.com/danielhkuo/inkpress/handlers"
	"github.com/danielhkuo/inkpress/mail"
	"github.com/danielhkuo/inkpress/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, mailer mail.Mailer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	publicHandler := handlers.NewPublicHandler(db, cfg)
	postHandler := handlers.NewPostHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	authorHandler := handlers.NewAuthorHandler(db, cfg)
	contactHandler := handlers.NewContactHandler(db, cfg, mailer)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public reads (published posts only)
	mux.HandleFunc("GET /posts", middleware.WithLogging(publicHandler.ListPosts))
	mux.HandleFunc("GET /posts/by-category", middleware.WithLogging(publicHandler.ListPostsByCategory))
	mux.HandleFunc("GET /posts/search", middleware.WithLogging(publicHandler.SearchPosts))
	mux.HandleFunc("GET /posts/{slug}", middleware.WithLogging(publicHandler.GetPost))

	// Author dashboard (auth + ownership)
	mux.HandleFunc("GET /author/posts", middleware.WithLogging(postHandler.ListMyPosts))
	mux.HandleFunc("GET /author/posts/{slug}", middleware.WithLogging(postHandler.GetMyPost))
	mux.HandleFunc("POST /author/posts", middleware.WithLogging(postHandler.CreatePost))
	mux.HandleFunc("PUT /author/posts", middleware.WithLogging(postHandler.UpdatePost))
	mux.HandleFunc("PUT /author/posts/{slug}/publish", middleware.WithLogging(postHandler.PublishPost))
	mux.HandleFunc("PUT /author/posts/{slug}/draft", middleware.WithLogging(postHandler.DraftPost))
	mux.HandleFunc("DELETE /author/posts/{slug}", middleware.WithLogging(postHandler.DeletePost))

	// Categories
	mux.HandleFunc("GET /categories", middleware.WithLogging(categoryHandler.ListCategories))
	mux.HandleFunc("POST /categories", middleware.WithLogging(categoryHandler.CreateCategory))
	mux.HandleFunc("DELETE /categories/{slug}", middleware.WithLogging(categoryHandler.DeleteCategory))

	// Authors
	mux.HandleFunc("POST /authors/register", middleware.WithLogging(authorHandler.Register))
	mux.HandleFunc("GET /authors/me", middleware.WithLogging(authorHandler.GetMe))

	// Contact form
	mux.HandleFunc("POST /contact", middleware.WithLogging(contactHandler.Create))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("inkpress API v1"))
	})

	return mux
}
