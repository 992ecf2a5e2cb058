package ctxkeys

import (
	"context"

	"github.com/goaltrack/goaltrack/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserKey contextKey = "user"
)

// User returns the authenticated user for this request, or nil. The request
// context is the only carrier of session identity; nothing is held in
// process-wide state.
func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
