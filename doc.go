// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Inkpress API server.

Inkpress is a blog content-management backend: authors draft, publish,
and edit posts; anonymous readers browse, search, and view published
posts with per-IP view counting; a contact form relays messages by mail.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3318 -d "postgres://..."

A .env file in the working directory is loaded first; real environment
variables win.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - AUTHOR_KEY_SALT (--author-salt): Secret for author key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - SMTP_ADDR, SMTP_USERNAME, SMTP_PASSWORD, SMTP_FROM: contact mail relay
  - CONTACT_EMAIL: recipient for contact notifications

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (posts, public reads, categories, authors, contact)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, client IP
  - models: Request/response types
  - auth: Author capability keys and slug generation
  - mail: SMTP transport for contact notifications
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
