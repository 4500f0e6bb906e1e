// Package module wires the billing resource using modkit
package module

import (
	"rolegate/internal/core/principal"
	"rolegate/internal/modkit"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/modkit/module"
	"rolegate/internal/modkit/querykit"
	"rolegate/internal/services/api/billing/domain"
	bhttp "rolegate/internal/services/api/billing/http"
	"rolegate/internal/services/api/billing/repo"
	"rolegate/internal/services/api/billing/service"
)

// Ports exposed by the billing module
type Ports struct {
	Service domain.ServicePort
}

// Module implements the billing module
type Module struct {
	deps  modkit.Deps
	b     modkit.Built
	ports Ports
}

// New constructs the billing module; routes are limited to organization admins
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	svc := service.New(deps.PG, repo.NewPG(),
		service.WithLimits(querykit.LimitsFrom(deps.Cfg.Prefix("PAGE_"))))
	return newModule(deps, svc, opts...)
}

func newModule(deps modkit.Deps, svc domain.ServicePort, opts ...modkit.Option) *Module {
	m := &Module{deps: deps, ports: Ports{Service: svc}}
	m.b = modkit.Build(append([]modkit.Option{
		modkit.WithName("billing"),
		modkit.WithPrefix("/billing"),
		modkit.WithRoles(principal.RoleOrgAdmin),
		modkit.WithPorts(m.ports),
		modkit.WithMiddlewares(httpkit.JSONBodies()),
		modkit.WithRegister(func(r httpkit.Router) { bhttp.Register(r, svc) }),
	}, opts...)...)
	return m
}

// Name satisfies module.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r, m.deps.Auth) }
