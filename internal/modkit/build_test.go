package modkit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"rolegate/internal/core/principal"
	"rolegate/internal/modkit/httpkit"
	phttp "rolegate/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()

	if b.Name != "" || b.Prefix != "" {
		t.Fatalf("defaults should be empty: %+v", b)
	}
	if b.Ports != nil {
		t.Fatalf("default Ports non-nil")
	}
	if b.Public || len(b.Roles) != 0 || len(b.Mw) != 0 {
		t.Fatalf("unexpected defaults: %+v", b)
	}

	var r httpkit.Router
	defer func() {
		if v := recover(); v != nil {
			t.Fatalf("default Register panicked: %v", v)
		}
	}()
	b.Register(r)
}

func TestBuild_CopiesSlices(t *testing.T) {
	t.Parallel()

	fnPtr := func(f func(http.Handler) http.Handler) uintptr {
		return reflect.ValueOf(f).Pointer()
	}
	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	mid := []func(http.Handler) http.Handler{mwA, mwB}
	roles := []principal.Role{principal.RoleTechnician}

	b := Build(
		WithName("appointments"),
		WithPrefix("/appointments"),
		WithMiddlewares(mid...),
		WithRoles(roles...),
	)

	mid[0] = func(next http.Handler) http.Handler { return next }
	roles[0] = principal.RoleOrgAdmin

	if fnPtr(b.Mw[0]) != fnPtr(mwA) || fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatalf("Built.Mw changed after source slice mutation")
	}
	if b.Roles[0] != principal.RoleTechnician {
		t.Fatalf("Built.Roles changed after source slice mutation")
	}
	if b.Name != "appointments" || b.Prefix != "/appointments" {
		t.Fatalf("name/prefix mismatch: %+v", b)
	}
}

type stubAuth struct {
	role  principal.Role
	calls int
}

func (s *stubAuth) Authenticate(_ context.Context, _ string, allowed ...principal.Role) (principal.Principal, principal.Account, error) {
	s.calls++
	p := principal.Principal{ID: uuid.New(), Role: s.role}
	return p, principal.Account{ID: p.ID, Role: s.role}, nil
}

func serve(t *testing.T, b Built, auth *stubAuth, target, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	b.Mount(phttp.AdaptChi(mux), auth)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestBuilt_Mount_ProtectedByDefault(t *testing.T) {
	t.Parallel()

	b := Build(
		WithPrefix("/diary"),
		WithRegister(func(r httpkit.Router) {
			httpkit.Get(r, "/ping", func(*http.Request) (any, error) { return "pong", nil })
		}),
	)
	auth := &stubAuth{role: principal.RoleDiaryUser}

	if rr := serve(t, b, auth, "/diary/ping", ""); rr.Code != http.StatusUnauthorized {
		t.Fatalf("no bearer: status=%d body=%s", rr.Code, rr.Body.String())
	}
	rr := serve(t, b, auth, "/diary/ping", "tok")
	if rr.Code != http.StatusOK {
		t.Fatalf("with bearer: status=%d body=%s", rr.Code, rr.Body.String())
	}
	var env struct {
		Data string `json:"data"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	if env.Data != "pong" || auth.calls != 1 {
		t.Fatalf("data=%q calls=%d", env.Data, auth.calls)
	}
}

func TestBuilt_Mount_Public(t *testing.T) {
	t.Parallel()

	b := Build(
		WithPrefix("/meta"),
		WithPublic(),
		WithRegister(func(r httpkit.Router) {
			httpkit.Get(r, "/health", func(*http.Request) (any, error) { return "ok", nil })
		}),
	)
	auth := &stubAuth{}
	if rr := serve(t, b, auth, "/meta/health", ""); rr.Code != http.StatusOK {
		t.Fatalf("public route status=%d", rr.Code)
	}
	if auth.calls != 0 {
		t.Fatalf("public route should not authenticate")
	}
}

func TestBuilt_Mount_MiddlewaresPrecedeAuth(t *testing.T) {
	t.Parallel()

	b := Build(
		WithPrefix("/billing"),
		WithMiddlewares(httpkit.JSONBodies()),
		WithRegister(func(r httpkit.Router) {
			httpkit.PostJSON(r, "/codes", func(_ *http.Request, in struct {
				Code string `json:"code"`
			}) (any, error) {
				return httpkit.Created(in.Code), nil
			})
		}),
	)
	auth := &stubAuth{role: principal.RoleOrgAdmin}
	mux := chi.NewRouter()
	b.Mount(phttp.AdaptChi(mux), auth)

	post := func(ct string) int {
		req := httptest.NewRequest(http.MethodPost, "/billing/codes", strings.NewReader(`{"code":"X-1"}`))
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", "Bearer tok")
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := post("text/plain"); code != http.StatusUnsupportedMediaType || auth.calls != 0 {
		t.Fatalf("text body: status=%d auth calls=%d", code, auth.calls)
	}
	if code := post("application/json; charset=utf-8"); code != http.StatusCreated || auth.calls != 1 {
		t.Fatalf("json body: status=%d auth calls=%d", code, auth.calls)
	}
}
