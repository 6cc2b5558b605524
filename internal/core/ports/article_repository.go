package ports

import (
	"context"

	"github.com/blogcms/admin-api/internal/core/domain"
)

// ArticleRepository defines persistence for articles.
//
// Every list operation returns rows ordered by creation time descending,
// ties broken by id descending, so presentation is stable without
// pagination.
type ArticleRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Article, error)
	FindByTitle(ctx context.Context, title string) (*domain.Article, error)
	FindAll(ctx context.Context) ([]*domain.Article, error)
	FindByAuthor(ctx context.Context, authorID int64) ([]*domain.Article, error)
	FindPublished(ctx context.Context) ([]*domain.Article, error)
	// Save upserts the article. A zero ID means insert; the assigned
	// numeric id is written back into the entity.
	Save(ctx context.Context, article *domain.Article) error
	Remove(ctx context.Context, id int64) error
}
