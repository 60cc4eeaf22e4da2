package httpx

import "context"

type ctxKey string

// CtxKeyUserID holds the authenticated caller's uid.
const CtxKeyUserID ctxKey = "user_id"

// UserID returns the authenticated caller's uid, or "" when the
// request carried no verified session.
func UserID(ctx context.Context) string {
	if uid, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return uid
	}
	return ""
}

// WithUserID returns a context carrying the caller's uid. Exposed for
// handler tests that bypass the session middleware.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, uid)
}
