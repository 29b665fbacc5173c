package httpx

import (
	"context"
	"net/http"
)

// Authenticator resolves the caller of a request. On success it returns the
// context downstream handlers should see, carrying whatever identity the
// implementation attaches.
type Authenticator interface {
	Authenticate(r *http.Request) (context.Context, error)
}

// ErrorWriter renders an authentication or authorization failure.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// AuthnMiddleware rejects requests the Authenticator cannot resolve.
func AuthnMiddleware(a Authenticator, onErr ErrorWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := a.Authenticate(r)
			if err != nil {
				onErr(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
