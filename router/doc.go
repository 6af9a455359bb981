// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes using Go 1.22+ routing patterns.

# Route Groups

Public reads (anonymous, published posts only):

	GET /posts
	GET /posts/by-category
	GET /posts/search
	GET /posts/{slug}
	GET /categories

Author dashboard (X-Author-ID / X-Author-Key required):

	GET    /author/posts
	GET    /author/posts/{slug}
	POST   /author/posts
	PUT    /author/posts
	PUT    /author/posts/{slug}/publish
	PUT    /author/posts/{slug}/draft
	DELETE /author/posts/{slug}

Authors and categories:

	POST /authors/register
	GET  /authors/me
	POST /categories
	DELETE /categories/{slug}

Contact:

	POST /contact

All routes are wrapped with middleware.WithLogging. Route registration
order doesn't matter; the Go 1.22 mux picks the most specific pattern,
so GET /posts/search wins over GET /posts/{slug}.
*/
package router
