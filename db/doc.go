// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema

CreateSchema creates all tables with IF NOT EXISTS, so it's safe to run
on every startup:

	if err := db.CreateSchema(dbConn); err != nil {
		// fatal
	}

# Tables

  - author: registered authors
  - category: taxonomy, optionally nested one level via parent_id
  - post: blog posts; slug UNIQUE, status draft/published, cached view_count
  - post_view: one row per (post, IP); PRIMARY KEY makes view dedup race-safe
  - contact_message: persisted contact form submissions

# Referential Behavior

  - post.author_id: ON DELETE CASCADE (an author's posts go with them)
  - post.category_id: ON DELETE RESTRICT (referenced categories cannot be deleted)
  - post_view.post_id: ON DELETE CASCADE (no orphan view rows)
  - category.parent_id: ON DELETE SET NULL
*/
package db
