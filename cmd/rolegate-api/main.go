package main

import (
	"context"
	"os/signal"
	"syscall"

	"rolegate/internal/modkit/repokit"
	"rolegate/internal/platform/auth"
	"rolegate/internal/platform/config"
	"rolegate/internal/platform/config/raw"
	"rolegate/internal/platform/logger"
	phttp "rolegate/internal/platform/net/http"
	"rolegate/internal/platform/net/middleware"
	"rolegate/internal/platform/store"

	"rolegate/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	// .env is optional; values already in the environment win
	if err := raw.Load(); err != nil {
		panic(err)
	}

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx,
		store.ConfigFrom("rolegate-api", pgCfg, root.Prefix("SERVICE_REDIS_")),
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	var rev auth.Revocations = auth.NopRevocations{}
	authCfg := auth.ConfigFrom(root.Prefix("AUTH_"))
	if st.RDS != nil {
		rev = auth.NewRedisRevocations(st.RDS.R, authCfg.RevocationPrefix)
	} else {
		l.Warn().Msg("redis disabled; logout cannot revoke tokens")
	}

	var metrics *middleware.Metrics
	if apiCfg.MayBool("METRICS", true) {
		metrics = middleware.NewMetrics("rolegate-api")
	}

	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) { m.Use(middleware.Defaults()...) })
	api.Mount(srv.Router(), api.Options{
		Config: apiCfg,
		// every tx caps how long it waits on row locks taken by the guard
		PG:      repokit.WithBeginHooks(st.PG, repokit.LocalSetting("lock_timeout", pgCfg.MayString("LOCK_TIMEOUT", "5s"))),
		RDS:     st.RDS,
		Tokens:  auth.NewResolver(authCfg, rev),
		Logger:  l,
		Metrics: metrics,
	})

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
