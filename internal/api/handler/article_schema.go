package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createArticleRequest struct {
	Title       string `json:"title"       validate:"required,min=3,max=255"`
	Content     string `json:"content"     validate:"required"`
	IsPublished bool   `json:"isPublished"`
}

// patchArticleRequest is a partial update; absent fields stay untouched.
type patchArticleRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=3,max=255"`
	Content     *string `json:"content"     validate:"omitempty,min=1"`
	IsPublished *bool   `json:"isPublished"`
}

// --- Response types ---
// Response-only types owned by the transport layer, kept separate from
// ports/domain types so the JSON contract is not coupled to internal
// service changes.

type userResponse struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type articleResponse struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	IsPublished    bool          `json:"isPublished"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	Author         *userResponse `json:"author"`
	LastModifiedBy *userResponse `json:"lastModifiedBy"`
}

type listArticlesResponse struct {
	Articles []articleResponse `json:"articles"`
	Total    int               `json:"total"`
}
