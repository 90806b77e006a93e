package session

import "context"

type ctxKey string

const idKey ctxKey = "tennis.session_id"

// WithID stores the session id in context.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// IDFromContext extracts the session id if present.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(idKey).(string)
	return id, ok && id != ""
}
