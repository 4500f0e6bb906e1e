package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rolegate/internal/core/principal"
	"rolegate/internal/modkit"
	"rolegate/internal/modkit/guardkit"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/modkit/querykit"
	"rolegate/internal/modkit/scope"
	perr "rolegate/internal/platform/errors"
	phttp "rolegate/internal/platform/net/http"
	"rolegate/internal/services/api/appointments/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubSvc struct {
	appt  domain.Appointment
	list  domain.ListInput
	patch domain.UpdateInput
}

func (s *stubSvc) List(_ context.Context, _ scope.Scope, in domain.ListInput) (querykit.Page[domain.Appointment], error) {
	s.list = in
	return querykit.Page[domain.Appointment]{Data: []domain.Appointment{s.appt}, Pagination: querykit.NewPagination(querykit.Window{Page: 1, Limit: 20}, 1)}, nil
}

func (s *stubSvc) Get(_ context.Context, sc scope.Scope, id uuid.UUID) (domain.Appointment, error) {
	if !s.appt.AssignedTo(sc.Principal.ID) {
		return domain.Appointment{}, perr.Authorizationf("not allowed to access this appointment")
	}
	return s.appt, nil
}

func (s *stubSvc) Update(_ context.Context, _ scope.Scope, _ uuid.UUID, in domain.UpdateInput) (domain.Appointment, error) {
	s.patch = in
	if err := guardkit.Immutable("organization_id", in.OrganizationID, s.appt.OrganizationID); err != nil {
		return domain.Appointment{}, err
	}
	return s.appt, nil
}

func (s *stubSvc) Delete(context.Context, scope.Scope, uuid.UUID) error { return nil }

func TestRoutes(t *testing.T) {
	t.Parallel()
	tech := principal.Principal{ID: uuid.New(), Role: principal.RoleTechnician}
	org := uuid.New()
	auth := httpkit.AuthFunc(func(_ context.Context, bearer string, allowed ...principal.Role) (principal.Principal, principal.Account, error) {
		require.Equal(t, []principal.Role{principal.RoleTechnician}, allowed)
		if bearer != "tech" {
			return principal.Principal{}, principal.Account{}, perr.Authenticationf("invalid token")
		}
		return tech, principal.Account{ID: tech.ID, Role: tech.Role, OrganizationID: uuid.NullUUID{UUID: org, Valid: true}}, nil
	})
	at := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	svc := &stubSvc{appt: domain.Appointment{
		ID: uuid.New(), OrganizationID: org, Title: "Visit", Status: domain.StatusScheduled,
		StartsAt: at, CreatedAt: at, UpdatedAt: at, Technicians: []uuid.UUID{tech.ID},
	}}
	m := newModule(modkit.Deps{Auth: auth}, svc)
	require.Equal(t, "appointments", m.Name())
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	call := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer tech")
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		return rr
	}
	path := "/appointments/" + svc.appt.ID.String()

	rr := call(http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var env struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Contains(t, env.Data, "room_id")
	require.Nil(t, env.Data["room_id"])
	require.Equal(t, []any{tech.ID.String()}, env.Data["technician_ids"])
	require.Equal(t, "2026-04-01T08:00:00.000Z", env.Data["starts_at"])

	rr = call(http.MethodPost, "/appointments/search", `{"room_id":null,"status":"scheduled","page":1}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.True(t, svc.list.RoomID.IsNull())
	require.Equal(t, domain.StatusScheduled, svc.list.Status.Or(""))

	rr = call(http.MethodPost, "/appointments/search", `{"status":"paused"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

	rr = call(http.MethodPatch, path, `{"organization_id":"`+uuid.NewString()+`"}`)
	require.Equal(t, http.StatusForbidden, rr.Code, rr.Body.String())

	rr = call(http.MethodPatch, path, `{"room_id":null,"notes":"ok"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.True(t, svc.patch.RoomID.IsNull())

	rr = call(http.MethodPatch, path, `{"created_at":"2026-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code, "server assigned fields are rejected")
}
