// Package service validates principals against their account rows
package service

import (
	"context"
	"errors"

	"rolegate/internal/core/principal"
	"rolegate/internal/modkit/repokit"
	perr "rolegate/internal/platform/errors"
	"rolegate/internal/services/accounts/domain"
)

// Svc implements domain.ValidatorPort
// the lookup runs on every call; accounts retired mid-session lose access on their next request
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
}

// New constructs the accounts service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo]) *Svc {
	if db == nil {
		panic("accounts.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("accounts.Service requires a non-nil Repo binder")
	}
	return &Svc{db: db, binder: binder}
}

// Validate implements domain.ValidatorPort
func (s *Svc) Validate(ctx context.Context, p principal.Principal) (principal.Account, error) {
	if !p.Role.Valid() {
		return principal.Account{}, perr.Authorizationf("unknown role %s", p.Role)
	}
	a, err := s.binder.Bind(s.db).Account(ctx, p.Role, p.ID)
	switch {
	case errors.Is(err, perr.ErrNotFound):
		return principal.Account{}, perr.Authorizationf("not enrolled")
	case err != nil:
		return principal.Account{}, err
	case !a.Active():
		return principal.Account{}, perr.Authorizationf("not enrolled")
	}
	return a, nil
}

// Gate resolves then validates the bearer of a request
// it satisfies the auth middleware port
type Gate struct {
	Tokens   domain.TokenPort
	Accounts domain.ValidatorPort
}

// Authenticate runs the resolver with the route's roles, then the account check
func (g Gate) Authenticate(ctx context.Context, bearer string, allowed ...principal.Role) (principal.Principal, principal.Account, error) {
	if g.Tokens == nil || g.Accounts == nil {
		return principal.Principal{}, principal.Account{}, perr.Unavailablef("authentication is not configured")
	}
	p, err := g.Tokens.Resolve(ctx, bearer, allowed...)
	if err != nil {
		return principal.Principal{}, principal.Account{}, err
	}
	a, err := g.Accounts.Validate(ctx, p)
	if err != nil {
		return principal.Principal{}, principal.Account{}, err
	}
	return p, a, nil
}
