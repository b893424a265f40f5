// Package shared holds cross-cutting request context helpers.
package shared

import "context"

type contextKey string

const tokenKey contextKey = "bearer-token"

// ContextWithToken stores the caller's bearer token for upstream calls.
func ContextWithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the bearer token carried by the request, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
