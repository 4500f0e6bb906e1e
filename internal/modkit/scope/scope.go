// Package scope exposes the authenticated caller carried on a request context
// handlers and services read the principal and tenant through here rather than from ctx keys
package scope

import (
	"context"

	"rolegate/internal/core/principal"
	perr "rolegate/internal/platform/errors"
	pnet "rolegate/internal/platform/net"

	"github.com/google/uuid"
)

// Scope is the validated identity of one request
type Scope struct {
	Principal principal.Principal
	Account   principal.Account
}

// With stores s on ctx; the auth middleware is the usual writer
func With(ctx context.Context, s Scope) context.Context {
	return pnet.WithCaller(ctx, s.Principal, s.Account)
}

// From returns the scope on ctx or an authentication error when the request is anonymous
func From(ctx context.Context) (Scope, error) {
	p, a, ok := pnet.Caller(ctx)
	if !ok {
		return Scope{}, perr.Authenticationf("missing caller")
	}
	return Scope{Principal: p, Account: a}, nil
}

// Principal returns the caller principal
func Principal(ctx context.Context) (principal.Principal, error) {
	s, err := From(ctx)
	return s.Principal, err
}

// Require returns the scope when the caller holds one of roles
func Require(ctx context.Context, roles ...principal.Role) (Scope, error) {
	s, err := From(ctx)
	if err != nil {
		return Scope{}, err
	}
	if len(roles) > 0 && !s.Principal.Is(roles...) {
		return Scope{}, perr.Authorizationf("role %s is not allowed here", s.Principal.Role)
	}
	return s, nil
}

// Tenant returns the caller's organization id
// callers without an organization get an authorization error
func (s Scope) Tenant() (uuid.UUID, error) {
	id, ok := s.Account.TenantID()
	if !ok {
		return uuid.Nil, perr.Authorizationf("caller has no organization")
	}
	return id, nil
}

// Tenant is the context flavoured shortcut for From(ctx).Tenant()
func Tenant(ctx context.Context) (uuid.UUID, error) {
	s, err := From(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return s.Tenant()
}
