package ports

import (
	"context"

	"github.com/hirepipe/ats/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create inserts the user and returns the stored row. A username that is
	// already taken surfaces as domain.ErrUsernameTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
