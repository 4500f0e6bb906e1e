// Package module wires principal validation and the session routes using modkit
package module

import (
	"rolegate/internal/modkit"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/modkit/module"
	"rolegate/internal/services/accounts/domain"
	ahttp "rolegate/internal/services/accounts/http"
	"rolegate/internal/services/accounts/repo"
	"rolegate/internal/services/accounts/service"
)

// Ports exposed by the accounts module
type Ports struct {
	Validator domain.ValidatorPort
	Gate      service.Gate
}

// Module implements the accounts module
type Module struct {
	deps  modkit.Deps
	b     modkit.Built
	ports Ports
}

// New constructs the accounts module
// the gate is built from deps.Tokens; deps.Auth is ignored since this module provides it
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	svc := service.New(deps.PG, repo.NewPG())
	gate := service.Gate{Accounts: svc}
	if deps.Tokens != nil {
		gate.Tokens = deps.Tokens
	}

	m := &Module{deps: deps, ports: Ports{Validator: svc, Gate: gate}}
	m.b = modkit.Build(append([]modkit.Option{
		modkit.WithName("accounts"),
		modkit.WithPrefix("/session"),
		modkit.WithRegister(func(r httpkit.Router) { ahttp.Register(r, gate.Tokens) }),
	}, opts...)...)
	return m
}

// Name satisfies module.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r, m.ports.Gate) }
