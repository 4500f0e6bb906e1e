package middleware

import (
	"context"
	"net/http"
	"strings"

	"rolegate/internal/core/principal"
	perr "rolegate/internal/platform/errors"
	"rolegate/internal/platform/logger"
	pnet "rolegate/internal/platform/net"
)

// AuthPort resolves and validates a bearer token on every request
// allowed empty means any known role
type AuthPort interface {
	Authenticate(ctx context.Context, bearer string, allowed ...principal.Role) (principal.Principal, principal.Account, error)
}

// Writer renders an envelope; phttp.JSON satisfies it
type Writer func(w http.ResponseWriter, status int, body any)

// BearerToken extracts the token from an Authorization: Bearer header
// the scheme is matched case insensitively; anything else yields ""
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Auth rejects requests whose bearer does not resolve to an enrolled principal of an allowed role
// A nil port fails closed
func Auth(p AuthPort, allowed []principal.Role, write Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fail := func(err error) {
				logger.C(r.Context()).Debug().
					Str("code", perr.CodeOf(err).String()).
					Err(err).
					Msg("auth rejected")
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
			}

			if p == nil {
				fail(perr.Unavailablef("authentication is not configured"))
				return
			}
			bearer := BearerToken(r)
			if bearer == "" {
				fail(perr.Authenticationf("missing bearer token"))
				return
			}

			pr, acct, err := p.Authenticate(r.Context(), bearer, allowed...)
			if err != nil {
				fail(err)
				return
			}

			ctx := pnet.WithCaller(r.Context(), pr, acct)
			ctx = logger.WithPrincipal(ctx, pr.ID.String(), pr.Role.String(), pnet.TenantID(ctx))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
