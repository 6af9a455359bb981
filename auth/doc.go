// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides author capability keys, identifiers, and slugs.

# Author Keys

Author keys use HMAC-SHA256 to create deterministic, verifiable keys:

	authorKey := auth.GenerateAuthorKey(authorID, salt)
	err := auth.ValidateAuthorKey(authorID, authorKey, salt)

The key is URL-safe base64 encoded without padding. Since it's
deterministic, the same author ID and salt always produce the same key.
This allows validation without storing the key in the database.

# ID Generation

Opaque identifiers for database records:

	id := auth.NewID()

IDs are UUIDv4 strings; new posts also use one as their placeholder
slug until the author renames it.

# Slugs

Slugify turns free text into a URL-safe slug:

	slug := auth.Slugify("Going Serverless!")  // "going-serverless"

Lowercase, runs of non-alphanumerics collapse into single hyphens, no
leading or trailing hyphen. Returns "" when nothing usable remains.
*/
package auth
