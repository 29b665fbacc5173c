package httpx

import (
	"context"
	"net/http"
)

// Authorizer decides whether an already authenticated request may proceed.
type Authorizer interface {
	Authorize(ctx context.Context) error
}

// AuthorizerFunc adapts a plain function to Authorizer.
type AuthorizerFunc func(ctx context.Context) error

func (f AuthorizerFunc) Authorize(ctx context.Context) error { return f(ctx) }

// RequireAuthorized must run after AuthnMiddleware.
func RequireAuthorized(a Authorizer, onErr ErrorWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := a.Authorize(r.Context()); err != nil {
				onErr(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
