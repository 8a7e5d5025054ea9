// internal/utils/context_keys.go

package utils

import "context"

// ctxKey is unexported to prevent collisions.
type ctxKey string

// CtxKeyUserAgent stores the client User-Agent string for audit stamping.
const CtxKeyUserAgent ctxKey = "userAgent"

// WithUserAgent returns a context carrying the client User-Agent string.
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, CtxKeyUserAgent, ua)
}

// UserAgentFromContext returns the stored User-Agent, or "" when absent.
func UserAgentFromContext(ctx context.Context) string {
	ua, _ := ctx.Value(CtxKeyUserAgent).(string)
	return ua
}
