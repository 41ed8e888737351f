package auth

import "context"

type ctxKey struct{}

// WithAuthorization stores the raw Authorization header value for the guard.
func WithAuthorization(ctx context.Context, header string) context.Context {
	return context.WithValue(ctx, ctxKey{}, header)
}

// AuthorizationFromContext returns the stored header, or "" if none.
func AuthorizationFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}
