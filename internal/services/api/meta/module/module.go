// Package module wires the public meta endpoints
package module

import (
	"time"

	"rolegate/internal/modkit"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/modkit/module"
	metahttp "rolegate/internal/services/api/meta/http"
)

// Module implements the meta module
type Module struct {
	deps modkit.Deps
	b    modkit.Built
}

// New constructs the meta module; its routes need no bearer
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	m := &Module{deps: deps}
	started := time.Now()
	hd := metahttp.Deps{
		ServiceName:  deps.Cfg.MayString("SERVICE_NAME", "rolegate-api"),
		StartedAt:    started,
		PG:           deps.PG,
		ReadyTimeout: deps.Cfg.MayDuration("READY_TIMEOUT", 2*time.Second),
	}
	if deps.RDS != nil {
		hd.RDS = deps.RDS
	}
	m.b = modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
		modkit.WithPublic(),
		modkit.WithRegister(func(r httpkit.Router) { metahttp.Register(r, hd) }),
	}, opts...)...)
	return m
}

// Name satisfies module.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies module.Module
func (m *Module) Ports() any { return nil }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r, m.deps.Auth) }
