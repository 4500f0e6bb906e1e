package auth

import (
	"time"

	"rolegate/internal/core/principal"
	perr "rolegate/internal/platform/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer mints signed tokens for a role and account id
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewIssuer builds an issuer sharing the resolver's settings
func NewIssuer(cfg Config) *Issuer {
	cfg = cfg.withDefaults()
	return &Issuer{secret: []byte(cfg.Secret), issuer: cfg.Issuer, ttl: cfg.TTL}
}

// Issue signs a token for id acting as role; ttl <= 0 uses the configured default
func (i *Issuer) Issue(role principal.Role, id uuid.UUID, ttl time.Duration) (string, Claims, error) {
	if !role.Valid() {
		return "", Claims{}, perr.Validationf("unknown role")
	}
	if id == uuid.Nil {
		return "", Claims{}, perr.Validationf("id is required")
	}
	if ttl <= 0 {
		ttl = i.ttl
	}

	issued := now().UTC()
	claims := Claims{
		Type:        role.String(),
		PrincipalID: id.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(i.secret)
	if err != nil {
		return "", Claims{}, perr.Wrap(err, perr.ErrorCodeUnknown, "sign token")
	}
	return signed, claims, nil
}
