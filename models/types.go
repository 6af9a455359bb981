package models

import "time"

// Post status constants
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Page size classes. Medium is reserved for a future endpoint class.
const (
	PageSizeSmall  = 6
	PageSizeMedium = 12
	PageSizeLarge  = 24
)

// Request types

type RegisterAuthorRequest struct {
	Username string `json:"username"`
}

type CreateCategoryRequest struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Parent string `json:"parent"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Phone   string `json:"phone"`
	Budget  string `json:"budget"`
}

// Response types

type RegisterAuthorResponse struct {
	AuthorID  string `json:"author_id"`
	AuthorKey string `json:"author_key"`
	Username  string `json:"username"`
}

type AuthorMeResponse struct {
	AuthorID  string    `json:"author_id"`
	Username  string    `json:"username"`
	PostCount int       `json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePostResponse struct {
	PostID string `json:"post_id"`
	Slug   string `json:"slug"`
}

type CreateCategoryResponse struct {
	CategoryID string `json:"category_id"`
	Slug       string `json:"slug"`
}

type SuccessResponse struct {
	Success string `json:"success"`
}

// Pagination metadata attached to every list envelope.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	NextPage   *int `json:"next_page,omitempty"`
	PrevPage   *int `json:"prev_page,omitempty"`
}

type PostListResponse struct {
	Posts      []PostSummary `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

type PostDetailResponse struct {
	Post Post `json:"post"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
}

// Domain types

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	AuthorID    string    `json:"author_id"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	TimeRead    *int      `json:"time_read,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	ViewCount   int       `json:"view_count"`
	Status      string    `json:"status"`
	Category    *Category `json:"category,omitempty"`
	Thumbnail   *string   `json:"thumbnail,omitempty"`
}

// PostSummary is the compact shape used by list endpoints.
type PostSummary struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	TimeRead         *int      `json:"time_read,omitempty"`
	PublishedAt      time.Time `json:"published_at"`
	PublishedDisplay string    `json:"published_display"`
	ViewCount        int       `json:"view_count"`
	Status           string    `json:"status"`
	CategoryName     *string   `json:"category_name,omitempty"`
	Thumbnail        *string   `json:"thumbnail,omitempty"`
}

type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ParentID *string `json:"parent_id,omitempty"`
}

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Budget    string    `json:"budget"`
	CreatedAt time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
