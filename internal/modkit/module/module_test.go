package module

import (
	"rolegate/internal/core/principal"
	phttp "rolegate/internal/platform/net/http"
)

// Gate stands in for the accounts authentication port
type Gate interface {
	Admit(role principal.Role) bool
}

type roleGate struct{ allow principal.Role }

func (g roleGate) Admit(role principal.Role) bool { return role == g.allow }

type stubModule struct {
	name    string
	ports   any
	mounted int
}

func (s *stubModule) Name() string             { return s.name }
func (s *stubModule) Ports() any               { return s.ports }
func (s *stubModule) MountRoutes(phttp.Router) { s.mounted++ }

var _ Module = (*stubModule)(nil)
