// Package repo provides postgres access for billing codes
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
	"rolegate/internal/services/api/billing/domain"

	"github.com/google/uuid"
)

var columns = []string{"id", "organization_id", "code", "description", "amount", "created_at", "updated_at"}

type (
	// PG implements domain.Repo using Postgres
	PG struct{}

	queries struct {
		q   repokit.Queryer
		src querykit.PGSource[domain.Code]
	}
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) domain.Repo {
	q = repokit.RequireQueryer(q)
	return &queries{q: q, src: querykit.PGSource[domain.Code]{Q: q, Table: domain.Table, Columns: columns, Scan: scan}}
}

func scan(row store.Row) (domain.Code, error) {
	var c domain.Code
	err := row.Scan(&c.ID, &c.OrganizationID, &c.Code, &c.Description, &c.Amount, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *queries) List(ctx context.Context, where querykit.Cond, s querykit.Sort, w querykit.Window) (querykit.Page[domain.Code], error) {
	p, err := querykit.Paginate(ctx, r.src, where, s, w)
	if err != nil {
		return p, perr.FromPostgresf(err, "list billing codes")
	}
	return p, nil
}

func (r *queries) Find(ctx context.Context, where querykit.Cond) (domain.Code, error) {
	sql, args := querykit.Render(where, nil)
	c, err := store.One(ctx, r.q, scan, "SELECT "+strings.Join(columns, ", ")+" FROM billing_codes WHERE "+sql, args...)
	if err != nil {
		return c, perr.FromPostgresf(err, "find billing code")
	}
	return c, nil
}

func (r *queries) Lock(ctx context.Context, id uuid.UUID) (domain.Code, error) {
	return store.One(ctx, r.q, scan, "SELECT "+strings.Join(columns, ", ")+" FROM billing_codes WHERE id = $1 FOR UPDATE", id)
}

func (r *queries) CodeTaken(ctx context.Context, org uuid.UUID, code string) error {
	return guardkit.Unique(ctx, r.q, "code",
		`SELECT 1 FROM billing_codes WHERE organization_id = $1 AND lower(code) = lower($2)`, org, code)
}

// Insert relies on the (organization_id, lower(code)) unique index when two creates race
func (r *queries) Insert(ctx context.Context, c domain.Code) error {
	const sql = `
INSERT INTO billing_codes (id, organization_id, code, description, amount, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	err := perr.FromPostgresf(store.ExecOne(ctx, r.q, sql,
		c.ID, c.OrganizationID, c.Code, c.Description, c.Amount, c.CreatedAt, c.UpdatedAt), "insert billing code")
	if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		return perr.WithField(perr.Conflictf("code is already taken"), "code")
	}
	return err
}

func (r *queries) Update(ctx context.Context, c domain.Code, prev time.Time) error {
	const sql = `
UPDATE billing_codes SET description = $2, amount = $3, updated_at = $4
WHERE id = $1 AND updated_at = $5`
	return guardkit.CAS(ctx, r.q, "billing code", sql, c.ID, c.Description, c.Amount, c.UpdatedAt, prev)
}

func (r *queries) Remove(ctx context.Context, id uuid.UUID, prev time.Time) error {
	return guardkit.CAS(ctx, r.q, "billing code", `DELETE FROM billing_codes WHERE id = $1 AND updated_at = $2`, id, prev)
}
