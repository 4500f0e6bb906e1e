package modkit

import (
	"net/http"

	"rolegate/internal/core/principal"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/platform/net/middleware"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
	Roles  []principal.Role
	Public bool

	// Register attaches the module's endpoints
	Register func(httpkit.Router)
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}

	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}

	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Roles:    append([]principal.Role(nil), c.roles...),
		Public:   c.public,
		Register: c.register,
	}
}

// Mount attaches the module under its prefix with its middleware
// routes are wrapped in bearer auth unless the module is public
func (b Built) Mount(r httpkit.Router, auth middleware.AuthPort) {
	httpkit.MountUnder(r, b.Prefix, b.Mw, func(sub httpkit.Router) {
		if b.Public {
			b.Register(sub)
			return
		}
		httpkit.Protected(sub, auth, b.Roles, b.Register)
	})
}
