// Package http provides http transport for the caller's own session
package http

import (
	stdhttp "net/http"

	"rolegate/internal/modkit/dtokit"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/modkit/scope"
	perr "rolegate/internal/platform/errors"
	"rolegate/internal/services/accounts/domain"
)

// Register mounts the session routes
func Register(r httpkit.Router, tokens domain.TokenPort) {
	h := &handlers{tokens: tokens}
	httpkit.Get(r, "/me", h.me)
	httpkit.Post(r, "/logout", h.logout)
}

type handlers struct{ tokens domain.TokenPort }

var meMapper = dtokit.NewMapper(
	dtokit.F("id", dtokit.Nullable, func(s scope.Scope) any { return s.Principal.ID }),
	dtokit.F("type", dtokit.Nullable, func(s scope.Scope) any { return s.Principal.Role.String() }),
	dtokit.F("display_name", dtokit.Nullable, func(s scope.Scope) any { return s.Account.DisplayName }),
	dtokit.F("organization_id", dtokit.Optional, func(s scope.Scope) any { return s.Account.OrganizationID }),
	dtokit.F("expires_at", dtokit.Nullable, func(s scope.Scope) any { return s.Principal.ExpiresAt }),
)

func (h *handlers) me(r *stdhttp.Request) (any, error) {
	s, err := httpkit.Caller(r)
	if err != nil {
		return nil, err
	}
	return meMapper.Map(s), nil
}

func (h *handlers) logout(r *stdhttp.Request) (any, error) {
	if h.tokens == nil {
		return nil, perr.Unavailablef("sessions are not configured")
	}
	p, err := scope.Principal(r.Context())
	if err != nil {
		return nil, err
	}
	if err := h.tokens.Revoke(r.Context(), p); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
