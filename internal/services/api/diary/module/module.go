// Package module wires the diary resource using modkit
package module

import (
	"rolegate/internal/core/principal"
	"rolegate/internal/modkit"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/modkit/module"
	"rolegate/internal/modkit/querykit"
	"rolegate/internal/services/api/diary/domain"
	dhttp "rolegate/internal/services/api/diary/http"
	"rolegate/internal/services/api/diary/repo"
	"rolegate/internal/services/api/diary/service"
)

// Ports exposed by the diary module
type Ports struct {
	Service domain.ServicePort
}

// Module implements the diary module
type Module struct {
	deps  modkit.Deps
	b     modkit.Built
	ports Ports
}

// New constructs the diary module; routes are limited to diary users
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	svc := service.New(deps.PG, repo.NewPG(),
		service.WithLimits(querykit.LimitsFrom(deps.Cfg.Prefix("PAGE_"))))
	return newModule(deps, svc, opts...)
}

func newModule(deps modkit.Deps, svc domain.ServicePort, opts ...modkit.Option) *Module {
	m := &Module{deps: deps, ports: Ports{Service: svc}}
	m.b = modkit.Build(append([]modkit.Option{
		modkit.WithName("diary"),
		modkit.WithPrefix("/diary"),
		modkit.WithRoles(principal.RoleDiaryUser),
		modkit.WithPorts(m.ports),
		modkit.WithMiddlewares(httpkit.JSONBodies()),
		modkit.WithRegister(func(r httpkit.Router) { dhttp.Register(r, svc) }),
	}, opts...)...)
	return m
}

// Name satisfies module.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r, m.deps.Auth) }
