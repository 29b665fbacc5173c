package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/auth/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// identityAuthenticator resolves the caller from the sid and token cookies.
type identityAuthenticator struct {
	resolver *service.IdentityResolver
}

func (a identityAuthenticator) Authenticate(r *http.Request) (context.Context, error) {
	id, err := a.resolver.Resolve(r.Context(), credentialsFrom(r))
	if err != nil {
		return nil, err
	}
	ctx := service.WithIdentity(r.Context(), id)
	return slogx.WithUserID(ctx, id.UserID), nil
}

// adminAuthorizer runs the gate against the identity AuthnMiddleware stored.
func adminAuthorizer(gate *service.AuthorizationGate) httpx.Authorizer {
	return httpx.AuthorizerFunc(func(ctx context.Context) error {
		id, ok := service.IdentityFromContext(ctx)
		if !ok {
			return service.ErrUnauthenticated
		}
		return gate.Authorize(ctx, id)
	})
}

// mustIdentity is for handlers mounted behind AuthnMiddleware.
func mustIdentity(r *http.Request) service.Identity {
	id, _ := service.IdentityFromContext(r.Context())
	return id
}
