package httptransport

import (
	"net/http"

	"restaurant-graphql-api/internal/auth"
)

// BearerMiddleware hands the Authorization header to the resolvers. It
// never rejects a request: public operations need no token, and each
// protected operation verifies it through auth.Guard.
type BearerMiddleware struct{}

func (m BearerMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := auth.WithAuthorization(r.Context(), header)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
