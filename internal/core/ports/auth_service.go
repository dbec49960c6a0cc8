package ports

import (
	"context"
	"time"

	"github.com/hirepipe/ats/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login does not distinguish an unknown username from a wrong password.
	Login(ctx context.Context, username, password string) (*domain.User, error)
	Identity(ctx context.Context, userID int64) (*domain.User, error)
}

// SessionToken is the signed value placed in the session cookie.
type SessionToken struct {
	Value     string
	ExpiresAt time.Time
}

// SessionService issues, resolves and revokes login sessions.
type SessionService interface {
	Start(ctx context.Context, userID int64) (*SessionToken, error)
	// Resolve returns the user id bound to token, or domain.ErrUnauthenticated.
	Resolve(ctx context.Context, token string) (int64, error)
	// End revokes the session behind token. Invalid tokens are ignored.
	End(ctx context.Context, token string) error
}
