package httpkit

import (
	"context"

	"rolegate/internal/core/principal"
	"rolegate/internal/platform/net/middleware"
)

// AuthFunc adapts a plain function to middleware.AuthPort
type AuthFunc func(ctx context.Context, bearer string, allowed ...principal.Role) (principal.Principal, principal.Account, error)

// Authenticate calls f
func (f AuthFunc) Authenticate(ctx context.Context, bearer string, allowed ...principal.Role) (principal.Principal, principal.Account, error) {
	return f(ctx, bearer, allowed...)
}

var _ middleware.AuthPort = AuthFunc(nil)
