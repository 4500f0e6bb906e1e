package httpkit

import "net/http"

// APIV1 is the path every resource module lives under
const APIV1 = "/api/v1"

// MountUnder scopes mount to prefix behind mw
// An empty prefix groups the routes on r itself
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	with := func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	}
	if prefix == "" {
		r.Group(with)
		return
	}
	r.Route(prefix, with)
}

// MountAPIV1 scopes mount to /api/v1 behind the per scope stack, e.g.
//
//	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackOptions{}), func(api httpkit.Router) {
//		mod.MountRoutes(api)
//	})
func MountAPIV1(r Router, stack []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, APIV1, stack, mount)
}
