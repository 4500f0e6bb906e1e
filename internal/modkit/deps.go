// Package modkit provides module wiring and core deps
package modkit

import (
	"rolegate/internal/modkit/repokit"
	"rolegate/internal/platform/auth"
	"rolegate/internal/platform/config"
	"rolegate/internal/platform/logger"
	"rolegate/internal/platform/net/middleware"
	"rolegate/internal/platform/store/rds"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	RDS *rds.Client

	// Tokens resolves and revokes bearer tokens; nil disables session endpoints
	Tokens *auth.Resolver
	// Auth resolves and validates the caller on protected routes; nil fails closed
	Auth middleware.AuthPort
}

// Named returns a component logger, falling back to the process root when Log is unset
func (d Deps) Named(component string) *logger.Logger {
	if d.Log == nil {
		return logger.Named(component)
	}
	l := d.Log.With().Str("component", component).Logger()
	return &l
}
