//go:build integration_pg

package api_test

import (
	"context"
	"testing"
	"time"

	"rolegate/internal/core/principal"
	"rolegate/internal/modkit/dtokit"
	"rolegate/internal/modkit/scope"
	perr "rolegate/internal/platform/errors"
	"rolegate/internal/platform/logger"
	"rolegate/internal/platform/store"
	"rolegate/internal/platform/store/pgtest"

	apptdomain "rolegate/internal/services/api/appointments/domain"
	apptrepo "rolegate/internal/services/api/appointments/repo"
	apptsvc "rolegate/internal/services/api/appointments/service"
	billdomain "rolegate/internal/services/api/billing/domain"
	billrepo "rolegate/internal/services/api/billing/repo"
	billsvc "rolegate/internal/services/api/billing/service"
	diarydomain "rolegate/internal/services/api/diary/domain"
	diaryrepo "rolegate/internal/services/api/diary/repo"
	diarysvc "rolegate/internal/services/api/diary/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var schema = []string{
	`CREATE TABLE diary_entries (
		id uuid PRIMARY KEY, owner_id uuid NOT NULL, title text NOT NULL, body text, mood int NOT NULL,
		created_at timestamptz NOT NULL, updated_at timestamptz NOT NULL, deleted_at timestamptz)`,
	`CREATE UNIQUE INDEX diary_entries_owner_title_key ON diary_entries (owner_id, lower(title)) WHERE deleted_at IS NULL`,
	`CREATE TABLE rooms (id uuid PRIMARY KEY, organization_id uuid, deleted_at timestamptz)`,
	`CREATE TABLE appointments (
		id uuid PRIMARY KEY, organization_id uuid NOT NULL, title text NOT NULL, notes text, status text NOT NULL,
		room_id uuid REFERENCES rooms (id), starts_at timestamptz NOT NULL,
		created_at timestamptz NOT NULL, updated_at timestamptz NOT NULL, deleted_at timestamptz)`,
	`CREATE TABLE appointment_assignments (
		appointment_id uuid NOT NULL REFERENCES appointments (id), technician_id uuid NOT NULL,
		PRIMARY KEY (appointment_id, technician_id))`,
	`CREATE TABLE billing_codes (
		id uuid PRIMARY KEY, organization_id uuid NOT NULL, code text NOT NULL, description text,
		amount numeric(12, 2) NOT NULL, created_at timestamptz NOT NULL, updated_at timestamptz NOT NULL)`,
	`CREATE UNIQUE INDEX billing_codes_org_code_key ON billing_codes (organization_id, lower(code))`,
}

func open(t *testing.T) *store.Store {
	t.Helper()
	dsn := pgtest.Start(t)
	pgtest.Apply(t, dsn, schema...)
	st, err := store.Open(context.Background(), store.Config{
		AppName: "rolegate-it",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 4, ConnectRetries: 10},
	}, store.WithLogger(*logger.Get()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

func caller(role principal.Role, org uuid.UUID) scope.Scope {
	id := uuid.New()
	a := principal.Account{ID: id, Role: role}
	if org != uuid.Nil {
		a.OrganizationID = uuid.NullUUID{UUID: org, Valid: true}
	}
	return scope.Scope{Principal: principal.Principal{ID: id, Role: role}, Account: a}
}

func TestPostgres(t *testing.T) {
	st := open(t)
	ctx := context.Background()

	t.Run("diary", func(t *testing.T) {
		s := diarysvc.New(st.PG, diaryrepo.NewPG())
		me, other := caller(principal.RoleDiaryUser, uuid.Nil), caller(principal.RoleDiaryUser, uuid.Nil)

		e, err := s.Create(ctx, me, diarydomain.CreateInput{Title: "Morning run", Mood: 4})
		require.NoError(t, err)
		_, err = s.Create(ctx, me, diarydomain.CreateInput{Title: "morning RUN", Mood: 2})
		require.True(t, perr.IsCode(err, perr.ErrorCodeConflict))
		_, err = s.Create(ctx, other, diarydomain.CreateInput{Title: "Morning run", Mood: 2})
		require.NoError(t, err)

		p, err := s.List(ctx, me, diarydomain.ListInput{Search: dtokit.Some("RUN")})
		require.NoError(t, err)
		require.Equal(t, 1, p.Pagination.Records)

		_, err = s.Get(ctx, other, e.ID)
		require.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))

		body := "felt great"
		got, err := s.Update(ctx, me, e.ID, diarydomain.UpdateInput{Body: dtokit.Some(body), ExpectedUpdatedAt: &e.UpdatedAt})
		require.NoError(t, err)
		require.Equal(t, body, *got.Body)

		_, err = s.Update(ctx, me, e.ID, diarydomain.UpdateInput{Mood: dtokit.Some(1), ExpectedUpdatedAt: &e.UpdatedAt})
		require.True(t, perr.IsCode(err, perr.ErrorCodeConflict), "stored stamp round-trips at millisecond precision")

		require.NoError(t, s.Delete(ctx, me, e.ID))
		p, err = s.List(ctx, me, diarydomain.ListInput{IncludeArchived: true})
		require.NoError(t, err)
		require.Len(t, p.Data, 1)
		require.NotNil(t, p.Data[0].DeletedAt)
	})

	t.Run("appointments", func(t *testing.T) {
		org, rival := uuid.New(), uuid.New()
		tech := caller(principal.RoleTechnician, org)
		room, foreignRoom, appt := uuid.New(), uuid.New(), uuid.New()
		at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
		seed(t, st, []string{
			`INSERT INTO rooms (id, organization_id) VALUES ('` + room.String() + `', '` + org.String() + `')`,
			`INSERT INTO rooms (id, organization_id) VALUES ('` + foreignRoom.String() + `', '` + rival.String() + `')`,
		})
		_, err := st.PG.Exec(ctx, `INSERT INTO appointments (id, organization_id, title, status, starts_at, created_at, updated_at)
VALUES ($1, $2, 'Checkup', 'scheduled', $3, $3, $3)`, appt, org, at)
		require.NoError(t, err)
		_, err = st.PG.Exec(ctx, `INSERT INTO appointment_assignments (appointment_id, technician_id) VALUES ($1, $2)`, appt, tech.Principal.ID)
		require.NoError(t, err)

		s := apptsvc.New(st.PG, apptrepo.NewPG())
		p, err := s.List(ctx, tech, apptdomain.ListInput{RoomID: dtokit.Null[uuid.UUID]()})
		require.NoError(t, err)
		require.Len(t, p.Data, 1)
		require.Equal(t, []uuid.UUID{tech.Principal.ID}, p.Data[0].Technicians)

		p, err = s.List(ctx, caller(principal.RoleTechnician, org), apptdomain.ListInput{})
		require.NoError(t, err)
		require.Empty(t, p.Data, "unassigned technicians see nothing")

		_, err = s.Update(ctx, tech, appt, apptdomain.UpdateInput{RoomID: dtokit.Some(foreignRoom)})
		require.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))
		got, err := s.Update(ctx, tech, appt, apptdomain.UpdateInput{RoomID: dtokit.Some(room), Status: dtokit.Some(apptdomain.StatusInProgress)})
		require.NoError(t, err)
		require.Equal(t, room, got.RoomID.UUID)
	})

	t.Run("billing", func(t *testing.T) {
		admin := caller(principal.RoleOrgAdmin, uuid.New())
		s := billsvc.New(st.PG, billrepo.NewPG())
		amt := decimal.RequireFromString("80.50")
		c, err := s.Create(ctx, admin, billdomain.CreateInput{Code: "CONS", Amount: &amt})
		require.NoError(t, err)

		p, err := s.List(ctx, admin, billdomain.ListInput{AmountFrom: dtokit.Some(decimal.NewFromInt(80))})
		require.NoError(t, err)
		require.Len(t, p.Data, 1)
		require.True(t, p.Data[0].Amount.Equal(amt))

		require.NoError(t, s.Delete(ctx, admin, c.ID))
		_, err = s.Get(ctx, admin, c.ID)
		require.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))
	})
}

func seed(t *testing.T, st *store.Store, stmts []string) {
	t.Helper()
	for _, s := range stmts {
		_, err := st.PG.Exec(context.Background(), s)
		require.NoError(t, err)
	}
}
