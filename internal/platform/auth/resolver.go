package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"rolegate/internal/core/principal"
	perr "rolegate/internal/platform/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Resolver turns a raw bearer token into a Principal
type Resolver struct {
	secret  []byte
	parser  *jwt.Parser
	revoked Revocations
}

// now is swapped in tests to pin token clocks
var now = time.Now

// NewResolver builds a resolver; a nil revocation list means nothing is ever revoked
func NewResolver(cfg Config, rev Revocations) *Resolver {
	cfg = cfg.withDefaults()
	if rev == nil {
		rev = NopRevocations{}
	}
	return &Resolver{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{signingMethod.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithLeeway(cfg.Leeway),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithTimeFunc(func() time.Time { return now() }),
		),
		revoked: rev,
	}
}

// Resolve verifies raw and returns its principal
// An empty want list accepts any known role; otherwise the role must be listed
func (r *Resolver) Resolve(ctx context.Context, raw string, want ...principal.Role) (principal.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return principal.Principal{}, perr.Authenticationf("missing bearer token")
	}

	claims := &Claims{}
	_, err := r.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return r.secret, nil })
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return principal.Principal{}, perr.Authenticationf("token expired")
	case err != nil:
		return principal.Principal{}, perr.Wrap(err, perr.ErrorCodeUnauthorized, "invalid token")
	}

	id, err := uuid.Parse(claims.PrincipalID)
	if err != nil || id == uuid.Nil {
		return principal.Principal{}, perr.Authenticationf("token subject is not a valid id")
	}
	if claims.ID == "" {
		return principal.Principal{}, perr.Authenticationf("token has no jti")
	}
	// a revoked credential is dead whatever role it claims
	revoked, err := r.revoked.Revoked(ctx, claims.ID)
	if err != nil {
		return principal.Principal{}, err
	}
	if revoked {
		return principal.Principal{}, perr.Authenticationf("token revoked")
	}
	if strings.TrimSpace(claims.Type) == "" {
		return principal.Principal{}, perr.Authenticationf("token has no role")
	}

	role, ok := principal.ParseRole(claims.Type)
	if !ok {
		return principal.Principal{}, perr.Authorizationf("unknown role %q", claims.Type)
	}

	p := principal.Principal{ID: id, Role: role, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	if len(want) > 0 && !p.Is(want...) {
		return principal.Principal{}, perr.Authorizationf("role %s is not allowed here", role)
	}
	return p, nil
}

// Revoke adds the principal's token to the revocation list until it would expire anyway
func (r *Resolver) Revoke(ctx context.Context, p principal.Principal) error {
	if p.TokenID == "" {
		return perr.Validationf("token has no jti")
	}
	return r.revoked.Revoke(ctx, p.TokenID, p.ExpiresAt)
}
