package middleware

import "context"

// ContextKey is a private key type so context values cannot collide with
// other packages.
type ContextKey string

const UserIDCtxKey = ContextKey("user_id")

// UserIDFromContext returns the authenticated user id, or "" for anonymous
// requests.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(UserIDCtxKey).(string)
	return id
}
