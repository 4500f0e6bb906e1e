package httpkit

import (
	"rolegate/internal/core/principal"
	"rolegate/internal/platform/net/middleware"
)

// Protected groups routes under bearer auth restricted to roles
// no roles means any enrolled caller
func Protected(r Router, p middleware.AuthPort, roles []principal.Role, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p, roles...))
		fn(gr)
	})
}
