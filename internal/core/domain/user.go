package domain

import "time"

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User models an authenticated actor in the system.
//
// Roles holds the stored role list as-is; EffectiveRoles derives the
// permission set actually used for authorization decisions.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Roles        []string  `json:"roles"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EffectiveRoles returns the stored roles unioned with the implicit base
// role, deduplicated. Order is stable: stored roles first in insertion
// order, then RoleUser if it was not already present.
func (u *User) EffectiveRoles() []string {
	roles := make([]string, 0, len(u.Roles)+1)
	seen := make(map[string]struct{}, len(u.Roles)+1)
	for _, r := range append(append([]string{}, u.Roles...), RoleUser) {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		roles = append(roles, r)
	}
	return roles
}

// HasRole reports whether role is in the effective role set.
func (u *User) HasRole(role string) bool {
	for _, r := range u.EffectiveRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// PublicUser is the sanitized user view exposed over the API.
// It never carries the password hash.
type PublicUser struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Public returns the sanitized view of the user with derived roles.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Roles: u.EffectiveRoles(),
	}
}
