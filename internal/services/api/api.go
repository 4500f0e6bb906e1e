// Package api composes the HTTP API from its resource modules
package api

import (
	"time"

	"rolegate/internal/modkit"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/modkit/module"
	"rolegate/internal/modkit/repokit"
	"rolegate/internal/platform/auth"
	"rolegate/internal/platform/config"
	"rolegate/internal/platform/logger"
	phttp "rolegate/internal/platform/net/http"
	"rolegate/internal/platform/net/middleware"
	"rolegate/internal/platform/store/rds"

	accountsmod "rolegate/internal/services/accounts/module"
	appointmentsmod "rolegate/internal/services/api/appointments/module"
	billingmod "rolegate/internal/services/api/billing/module"
	diarymod "rolegate/internal/services/api/diary/module"
	metamod "rolegate/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	// Config is the service view, usually CORE_API_
	Config config.Conf
	PG     repokit.TxRunner
	RDS    *rds.Client
	Tokens *auth.Resolver
	Logger *logger.Logger
	// Metrics, when set, instruments every v1 route and serves /metrics
	Metrics *middleware.Metrics
}

// Mount builds every module, mounts them under /api/v1 and returns the registry
func Mount(r phttp.Router, opt Options) *module.Registry {
	deps := modkit.Deps{
		Log:    opt.Logger,
		Cfg:    opt.Config,
		PG:     opt.PG,
		RDS:    opt.RDS,
		Tokens: opt.Tokens,
	}

	// accounts owns the gate every protected module authenticates through
	accounts := accountsmod.New(deps)
	deps.Auth = module.MustPortsOf[accountsmod.Ports](accounts).Gate

	reg := module.NewRegistry()
	if err := reg.Add(
		metamod.New(deps),
		accounts,
		diarymod.New(deps),
		appointmentsmod.New(deps),
		billingmod.New(deps),
	); err != nil {
		panic(err)
	}
	mods := reg.Modules()

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORS: middleware.CORSOptions{
			AllowedOrigins: opt.Config.MayCSV("CORS_ORIGINS", []string{"*"}),
		},
		Metrics: opt.Metrics,
		Timeout: opt.Config.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
	})

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}
	deps.Named("api").Info().Int("modules", len(mods)).Msg("api mounted")
	return reg
}
