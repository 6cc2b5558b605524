package domain

import "time"

// Audit actions recorded in the auth_events trail.
const (
	ActionLogin         = "login"
	ActionLoginFailed   = "login_failed"
	ActionLogout        = "logout"
	ActionAccessDenied  = "access_denied"
	ActionArticleWrite  = "article_write"
	ActionArticleDelete = "article_delete"
)

// AuthEvent is a single entry in the audit trail. Actor is the email of the
// user the event concerns (the attempted email for failed logins).
type AuthEvent struct {
	Actor     string
	Action    string
	Subject   string // optional detail, e.g. "article:42" or the denied path
	Timestamp time.Time
}
