package module

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rolegate/internal/modkit"
	phttp "rolegate/internal/platform/net/http"
	"rolegate/internal/platform/store"
	"rolegate/internal/platform/store/storetest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// pingTx is a TxRunner that also answers readiness pings
type pingTx struct {
	runner storetest.Tx
	err    error
}

var (
	_ store.TxRunner = (*pingTx)(nil)
	_ store.Pinger   = (*pingTx)(nil)
)

func (p *pingTx) Ping(context.Context) error { return p.err }

func (p *pingTx) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return p.runner.Tx(ctx, fn)
}

func (p *pingTx) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	return p.runner.Exec(ctx, sql, args...)
}

func (p *pingTx) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	return p.runner.Query(ctx, sql, args...)
}

func (p *pingTx) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	return p.runner.QueryRow(ctx, sql, args...)
}

func serve(t *testing.T, deps modkit.Deps, path string, want int) map[string]any {
	t.Helper()
	m := New(deps)
	require.Equal(t, "meta", m.Name())
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, want, rr.Code, rr.Body.String())
	var env struct {
		StatusCode int            `json:"status_code"`
		Data       map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, want, env.StatusCode)
	return env.Data
}

func TestReady(t *testing.T) {
	got := serve(t, modkit.Deps{PG: &pingTx{}}, "/meta/ready", http.StatusOK)
	require.Equal(t, "degraded", got["status"], "redis is not configured")

	got = serve(t, modkit.Deps{}, "/meta/ready", http.StatusOK)
	require.Equal(t, "degraded", got["status"], "nothing configured is skipped, not failed")
}

func TestReady_FailAnswers503WithoutCause(t *testing.T) {
	cause := errors.New(`dial tcp 10.0.0.7:5432: connect: connection refused`)
	got := serve(t, modkit.Deps{PG: &pingTx{err: cause}}, "/meta/ready", http.StatusServiceUnavailable)
	require.Equal(t, "fail", got["status"])

	checks := got["checks"].([]any)
	require.Len(t, checks, 2)
	pg := checks[0].(map[string]any)
	require.Equal(t, "pg", pg["name"])
	require.Equal(t, "fail", pg["status"])
	require.Equal(t, "unavailable", pg["error"])
	require.Equal(t, "skipped", checks[1].(map[string]any)["status"])
}

func TestHealthAndVersion_NoBearer(t *testing.T) {
	t.Setenv("SERVICE_NAME", "rolegate-test")
	got := serve(t, modkit.Deps{}, "/meta/health", http.StatusOK)
	require.Equal(t, "ok", got["status"])
	require.Equal(t, "rolegate-test", got["service"])
	require.NotContains(t, got, "ok")

	got = serve(t, modkit.Deps{}, "/meta/version", http.StatusOK)
	require.Equal(t, "rolegate-test", got["service"])
	require.Equal(t, "dev", got["version"])
}
