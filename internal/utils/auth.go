package utils

import (
	"context"

	"hmade-storefront/internal/auth"
)

// SetSessionContext stores the caller's session (called by middleware)
func SetSessionContext(ctx context.Context, sess auth.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

// GetSessionFromContext retrieves the session safely
func GetSessionFromContext(ctx context.Context) (auth.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(auth.Session)
	return sess, ok
}

// GetUserIDFromContext retrieves the user id of the session, if any
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	sess, ok := GetSessionFromContext(ctx)
	if !ok || sess.UserID == "" {
		return "", false
	}
	return sess.UserID, true
}
