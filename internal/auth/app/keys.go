package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
)

// InitTokenKeys builds the HS256 signer and verifier from the shared secret.
// Every instance of the service must be given the same secret, otherwise
// tokens issued by one are rejected by the others.
func InitTokenKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, jwtx.Verifier, error) {
	secret := []byte(cfg.TokenSecret)

	signer, err := jwtx.NewSignerHS256("", secret)
	if err != nil {
		return nil, nil, fmt.Errorf("create token signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{Issuer: cfg.TokenIssuer})
	if err != nil {
		return nil, nil, fmt.Errorf("create token verifier: %w", err)
	}

	logger.Info("token keys ready", "alg", signer.Alg(), "issuer", cfg.TokenIssuer, "ttl", cfg.TokenTTL)
	return signer, verifier, nil
}
