package modkit

import (
	"net/http"

	"rolegate/internal/core/principal"
	phttp "rolegate/internal/platform/net/http"
)

// Option configures a module before Build
type Option func(*buildCfg)

type buildCfg struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	ports    any
	roles    []principal.Role
	public   bool
	register func(phttp.Router)
}

// WithName names the module in logs and in the registry
func WithName(name string) Option { return func(c *buildCfg) { c.name = name } }

// WithPrefix mounts the module under prefix, e.g. /billing
func WithPrefix(prefix string) Option { return func(c *buildCfg) { c.prefix = prefix } }

// WithMiddlewares runs mw ahead of authentication, first added outermost
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts publishes the module's ports bundle to other modules
func WithPorts[T any](p T) Option { return func(c *buildCfg) { c.ports = p } }

// WithRoles admits only the given roles; repeated calls accumulate
// Without it any enrolled caller passes
func WithRoles(roles ...principal.Role) Option {
	return func(c *buildCfg) { c.roles = append(c.roles, roles...) }
}

// WithPublic skips bearer authentication for the whole module
func WithPublic() Option { return func(c *buildCfg) { c.public = true } }

// WithRegister sets the function attaching the module's endpoints
func WithRegister(fn func(phttp.Router)) Option { return func(c *buildCfg) { c.register = fn } }
