// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterAuthorRequest: username
  - CreateCategoryRequest: name, slug, parent
  - ContactRequest: name, email, subject, message, phone, budget

The post update endpoint is multipart, not JSON; its optional fields
are read individually so that absence can mean "leave unchanged".

# Response Types

Types for JSON responses:

  - RegisterAuthorResponse: author_id, author_key, username
  - CreatePostResponse: post_id, slug
  - CreateCategoryResponse: category_id, slug
  - PostListResponse: posts, pagination
  - PostDetailResponse: post
  - CategoryListResponse: categories
  - SuccessResponse: success
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Post: full post with content and optional category
  - PostSummary: compact list shape with humanized publish time
  - Category: taxonomy node with optional parent
  - ContactMessage: persisted copy of a contact submission

# Constants

Status values:

	StatusDraft     = "draft"
	StatusPublished = "published"

Page size classes:

	PageSizeSmall  = 6
	PageSizeMedium = 12
	PageSizeLarge  = 24
*/
package models
