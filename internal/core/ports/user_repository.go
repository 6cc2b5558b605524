package ports

import (
	"context"

	"github.com/blogcms/admin-api/internal/core/domain"
)

// UserRepository defines persistence for user records.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindAll returns all users ordered by creation time descending,
	// ties broken by id descending.
	FindAll(ctx context.Context) ([]*domain.User, error)
	// Save upserts the user. A zero ID means insert; the assigned numeric
	// id is written back into the entity.
	Save(ctx context.Context, user *domain.User) error
	Remove(ctx context.Context, id int64) error
}
