package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"rolegate/internal/core/principal"
	phttp "rolegate/internal/platform/net/http"
	"rolegate/internal/platform/net/middleware"
)

// StackOptions tunes the per scope middleware stack
type StackOptions struct {
	CORS    middleware.CORSOptions
	Metrics *middleware.Metrics
	Timeout time.Duration
}

// CommonStack returns a baseline per scope middleware slice
// request id, logging and recovery are applied at the server root by middleware.Defaults
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	stack := []func(http.Handler) http.Handler{}
	if o.Metrics != nil {
		stack = append(stack, o.Metrics.Middleware())
	}
	return append(stack,
		middleware.CORS(o.CORS),
		middleware.NoCache(),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(timeout),
	)
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort, roles ...principal.Role) func(http.Handler) http.Handler {
	return middleware.Auth(p, roles, phttp.JSON)
}

// JSONBodies answers 415 for a request body that is not application/json
func JSONBodies() func(http.Handler) http.Handler {
	return middleware.AllowContentType("application/json")
}
