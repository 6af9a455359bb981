// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Authors
CREATE TABLE IF NOT EXISTS author (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Categories (one level of nesting is honored by listings; deeper
-- parents are stored but not descended into)
CREATE TABLE IF NOT EXISTS category (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    parent_id TEXT REFERENCES category(id) ON DELETE SET NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_category_slug ON category(slug);
CREATE INDEX IF NOT EXISTS idx_category_parent_id ON category(parent_id);

-- Posts
CREATE TABLE IF NOT EXISTS post (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT 'New Post',
    slug TEXT NOT NULL UNIQUE,
    author_id TEXT NOT NULL REFERENCES author(id) ON DELETE CASCADE,
    description TEXT NOT NULL DEFAULT 'Enter a brief description here...',
    content TEXT NOT NULL DEFAULT 'Start writing your content here...',
    time_read INTEGER,
    published_at TIMESTAMP NOT NULL DEFAULT NOW(),
    view_count INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'published')),
    category_id TEXT REFERENCES category(id) ON DELETE RESTRICT,
    thumbnail TEXT
);

CREATE INDEX IF NOT EXISTS idx_post_slug ON post(slug);
CREATE INDEX IF NOT EXISTS idx_post_status ON post(status);
CREATE INDEX IF NOT EXISTS idx_post_author_id ON post(author_id);
CREATE INDEX IF NOT EXISTS idx_post_category_id ON post(category_id);
CREATE INDEX IF NOT EXISTS idx_post_published_at ON post(published_at DESC);

-- Post views: the composite primary key makes per-IP deduplication
-- race-safe; view_count on post is derived from these rows
CREATE TABLE IF NOT EXISTS post_view (
    post_id TEXT NOT NULL REFERENCES post(id) ON DELETE CASCADE,
    ip_address TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    PRIMARY KEY (post_id, ip_address)
);

CREATE INDEX IF NOT EXISTS idx_post_view_post_id ON post_view(post_id);

-- Contact messages (persisted copy of every notification sent)
CREATE TABLE IF NOT EXISTS contact_message (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT,
    subject TEXT,
    message TEXT NOT NULL,
    budget TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`
