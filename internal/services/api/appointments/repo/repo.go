// Package repo provides postgres access for appointments
package repo

import (
	"context"
	"strings"
	"time"

	"rolegate/internal/modkit/guardkit"
	"rolegate/internal/modkit/querykit"
	"rolegate/internal/modkit/repokit"
	perr "rolegate/internal/platform/errors"
	"rolegate/internal/platform/store"
	"rolegate/internal/services/api/appointments/domain"

	"github.com/google/uuid"
)

// the last column carries the assigned technicians so scope checks need no second query
var columns = []string{
	"id", "organization_id", "title", "notes", "status", "room_id",
	"starts_at", "created_at", "updated_at", "deleted_at",
	"ARRAY(SELECT t.technician_id FROM appointment_assignments t WHERE t.appointment_id = appointments.id)",
}

var rooms = guardkit.PGRef("rooms")

type (
	// PG implements domain.Repo using Postgres
	PG struct{}

	queries struct {
		q   repokit.Queryer
		src querykit.PGSource[domain.Appointment]
	}
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) domain.Repo {
	q = repokit.RequireQueryer(q)
	return &queries{q: q, src: querykit.PGSource[domain.Appointment]{Q: q, Table: domain.Table, Columns: columns, Scan: scan}}
}

func scan(row store.Row) (domain.Appointment, error) {
	var (
		a      domain.Appointment
		status string
	)
	err := row.Scan(&a.ID, &a.OrganizationID, &a.Title, &a.Notes, &status, &a.RoomID,
		&a.StartsAt, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt, &a.Technicians)
	a.Status = domain.Status(status)
	return a, err
}

func (r *queries) List(ctx context.Context, where querykit.Cond, s querykit.Sort, w querykit.Window) (querykit.Page[domain.Appointment], error) {
	p, err := querykit.Paginate(ctx, r.src, where, s, w)
	if err != nil {
		return p, perr.FromPostgresf(err, "list appointments")
	}
	return p, nil
}

var byID = "SELECT " + strings.Join(columns, ", ") + " FROM appointments WHERE id = $1"

func (r *queries) Find(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	return store.One(ctx, r.q, scan, byID, id)
}

func (r *queries) Lock(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	return store.One(ctx, r.q, scan, byID+" FOR UPDATE", id)
}

func (r *queries) Room(ctx context.Context, id uuid.UUID) (guardkit.RefRow, error) {
	return rooms(ctx, r.q, id)
}

func (r *queries) Update(ctx context.Context, a domain.Appointment, prev time.Time) error {
	const sql = `
UPDATE appointments
SET title = $2, notes = $3, status = $4, room_id = $5, starts_at = $6, updated_at = $7
WHERE id = $1 AND updated_at = $8 AND deleted_at IS NULL`
	return guardkit.CAS(ctx, r.q, "appointment", sql,
		a.ID, a.Title, a.Notes, string(a.Status), a.RoomID, a.StartsAt, a.UpdatedAt, prev)
}

func (r *queries) Archive(ctx context.Context, id uuid.UUID, at, prev time.Time) error {
	const sql = `
UPDATE appointments SET deleted_at = $2, updated_at = $2
WHERE id = $1 AND updated_at = $3 AND deleted_at IS NULL`
	return guardkit.CAS(ctx, r.q, "appointment", sql, id, at, prev)
}
