// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Inkpress API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - PublicHandler: Anonymous reads over published posts
  - PostHandler: Author-gated post lifecycle and dashboard
  - CategoryHandler: Category listing and curation
  - AuthorHandler: Author registration and identity
  - ContactHandler: Contact form (also takes a mail.Mailer)

Handlers are created via constructor functions that accept *sql.DB and Config:

	postHandler := handlers.NewPostHandler(db, cfg)

# Post Lifecycle

Posts move between two states: draft ↔ published

	POST /author/posts                  → CreatePost (empty draft, all defaults)
	PUT  /author/posts                  → UpdatePost (partial, multipart fields)
	PUT  /author/posts/{slug}/publish   → PublishPost
	PUT  /author/posts/{slug}/draft     → DraftPost
	DELETE /author/posts/{slug}         → DeletePost (views cascade)

Author operations require the X-Author-ID and X-Author-Key headers and
check ownership before touching any data. Transitions are idempotent
and never move published_at.

# Public Reads

Anonymous callers only ever see published posts:

	GET /posts                → ListPosts (newest first, small pages)
	GET /posts/by-category    → ListPostsByCategory (category + direct children)
	GET /posts/search         → SearchPosts (title/description/category name)
	GET /posts/{slug}         → GetPost (records a view per IP)

# View Counting

RecordView in views.go deduplicates views per (post, IP) inside one
transaction. The composite primary key on post_view makes the dedup
race-safe; post.view_count is a derived cache of the row count.

# Contact

POST /contact validates, mails the site owner, and persists a copy.
Every failure mode produces the same external body; causes are logged.
*/
package handlers
