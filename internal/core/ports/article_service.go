package ports

import (
	"context"
	"time"

	"github.com/blogcms/admin-api/internal/core/domain"
)

// CreateArticleInput carries the fields accepted when creating an article.
type CreateArticleInput struct {
	Title       string
	Content     string
	IsPublished bool
}

// UpdateArticleInput carries a partial update. Nil fields are left untouched.
type UpdateArticleInput struct {
	Title       *string
	Content     *string
	IsPublished *bool
}

// ArticleDetail is the full article view with author references resolved to
// sanitized user views. Author and LastModifiedBy are nil when unset or when
// the referenced user no longer exists.
type ArticleDetail struct {
	ID             int64
	Title          string
	Content        string
	IsPublished    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Author         *domain.PublicUser
	LastModifiedBy *domain.PublicUser
}

// ListArticlesFilter narrows List results.
type ListArticlesFilter struct {
	PublishedOnly bool
	AuthorID      int64 // 0 = no author filter
}

// ArticleService defines the article use-cases. The actor is the current
// authenticated identity, passed explicitly; nil means no identity could be
// resolved, in which case authorship bookkeeping is skipped.
type ArticleService interface {
	List(ctx context.Context, filter ListArticlesFilter) ([]*ArticleDetail, error)
	Get(ctx context.Context, id int64) (*ArticleDetail, error)
	// Create persists a new article. When the actor is known it is
	// recorded as the author.
	Create(ctx context.Context, actor *Identity, input CreateArticleInput) (*ArticleDetail, error)
	// Update applies a partial update. When the actor is known it is
	// recorded as last-modified-by; an unknown actor leaves the previous
	// value untouched.
	Update(ctx context.Context, actor *Identity, id int64, input UpdateArticleInput) (*ArticleDetail, error)
	// Replace overwrites title, content and published flag wholesale.
	Replace(ctx context.Context, actor *Identity, id int64, input CreateArticleInput) (*ArticleDetail, error)
	Delete(ctx context.Context, actor *Identity, id int64) error
}
