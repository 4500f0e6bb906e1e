// Package module wires the appointments resource using modkit
package module

import (
	"rolegate/internal/core/principal"
	"rolegate/internal/modkit"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/modkit/module"
	"rolegate/internal/modkit/querykit"
	"rolegate/internal/services/api/appointments/domain"
	ahttp "rolegate/internal/services/api/appointments/http"
	"rolegate/internal/services/api/appointments/repo"
	"rolegate/internal/services/api/appointments/service"
)

// Ports exposed by the appointments module
type Ports struct {
	Service domain.ServicePort
}

// Module implements the appointments module
type Module struct {
	deps  modkit.Deps
	b     modkit.Built
	ports Ports
}

// New constructs the appointments module; routes are limited to technicians
// APPOINTMENTS_PAGE_ overrides the default page size within the global PAGE_ cap
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	global := querykit.LimitsFrom(deps.Cfg.Prefix("PAGE_"))
	limits := querykit.Limits{Default: min(service.DefaultLimits.Default, global.Max), Max: global.Max}.
		From(deps.Cfg.Prefix("APPOINTMENTS_PAGE_"))
	svc := service.New(deps.PG, repo.NewPG(), service.WithLimits(limits))
	return newModule(deps, svc, opts...)
}

func newModule(deps modkit.Deps, svc domain.ServicePort, opts ...modkit.Option) *Module {
	m := &Module{deps: deps, ports: Ports{Service: svc}}
	m.b = modkit.Build(append([]modkit.Option{
		modkit.WithName("appointments"),
		modkit.WithPrefix("/appointments"),
		modkit.WithRoles(principal.RoleTechnician),
		modkit.WithPorts(m.ports),
		modkit.WithRegister(func(r httpkit.Router) { ahttp.Register(r, svc) }),
	}, opts...)...)
	return m
}

// Name satisfies module.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r, m.deps.Auth) }
