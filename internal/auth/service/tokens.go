package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/folio/internal/auth/domain"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
)

// TokenService issues and verifies the login token carried in the token cookie.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
	Clock    Clock
}

// Issue signs a token for u at the service clock's now.
func (s *TokenService) Issue(u domain.User) (string, time.Time, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultUserTokenTTL
	}

	now := s.Clock.now()
	claims := jwtx.NewUserClaims(u.ID, u.TokenVersion, ttl, s.Issuer, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// Verify checks signature and time claims. Every failure matches
// ErrTokenInvalid and keeps the jwtx cause for logging.
func (s *TokenService) Verify(token string) (jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	return claims, nil
}
