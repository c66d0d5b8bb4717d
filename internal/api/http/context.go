package http

import "context"

type contextKey int

const uidKey contextKey = iota

// WithUID returns a context carrying the verified caller uid.
func WithUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, uidKey, uid)
}

// UIDFromContext returns the caller uid set by the auth middleware. Public routes have none.
func UIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(uidKey).(string)
	return uid, ok && uid != ""
}
