package ports

import (
	"context"

	"github.com/blogcms/admin-api/internal/core/domain"
)

// LoginResult is returned on successful authentication. Token is a signed
// bearer token for non-browser API clients; browser clients rely on the
// session cookie issued by the transport layer instead.
type LoginResult struct {
	User  domain.PublicUser
	Token string
}

// AuthService verifies credentials and issues API tokens.
type AuthService interface {
	// Login authenticates the (email, password) pair. Unknown email and
	// wrong password both fail with domain.ErrInvalidCredentials so the
	// two cases are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// VerifyToken parses a bearer token and returns the identity it binds.
	VerifyToken(token string) (*Identity, error)
}
