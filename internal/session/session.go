// Package session keeps the per-browser session in the persistent key-value
// store. The browser only holds an opaque session id; token, role and display
// name live server side, keyed by that id.
package session

import (
	"context"

	"hackafrica-web/internal/models"

	"github.com/google/uuid"
)

// Keys of the persistent store.
const (
	KeyToken          = "token"
	KeyRole           = "role"
	KeyName           = "name"
	KeyUserID         = "userId"
	KeyPending        = "pendingParticipation"
	KeyFlash          = "flash"
	KeyProjectCreated = "projectCreatedAt"
)

var identityKeys = []string{KeyToken, KeyRole, KeyName, KeyUserID}

// Session is the client's view of who is logged in.
type Session struct {
	Token  string
	Role   string
	Name   string
	UserID string
}

// Authenticated reports whether a token is present. Token and role are not
// checked against each other; the backend is the authority.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// IsAdmin drives display-only affordances such as the create-hackathon link.
// It is not an authorization check.
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// NewID returns a fresh opaque session id.
func NewID() string {
	return uuid.NewString()
}

type ctxKey struct{}

// WithID stores the browser's session id in ctx.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IDFrom returns the session id stored by WithID, or "".
func IDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
