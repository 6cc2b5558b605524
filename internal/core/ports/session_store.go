package ports

import (
	"context"
	"time"
)

// Identity is the authenticated principal bound to a session or token.
// Roles is the effective (derived) role set, not the stored list.
type Identity struct {
	UserID int64    `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}

// HasRole reports whether the identity carries the given role.
func (id *Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SessionStore persists server-side sessions keyed by an opaque id.
type SessionStore interface {
	// Create stores the identity under a freshly generated opaque id and
	// returns that id. The session expires after ttl.
	Create(ctx context.Context, identity Identity, ttl time.Duration) (string, error)
	// Get resolves a session id to its identity. Unknown, malformed or
	// expired ids fail with domain.ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (*Identity, error)
	// Delete removes the session. Deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
