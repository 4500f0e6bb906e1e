// Package repo provides postgres access for diary entries
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
	"rolegate/internal/services/api/diary/domain"

	"github.com/google/uuid"
)

var columns = []string{"id", "owner_id", "title", "body", "mood", "created_at", "updated_at", "deleted_at"}

type (
	// PG implements domain.Repo using Postgres
	PG struct{}

	queries struct {
		q   repokit.Queryer
		src querykit.PGSource[domain.Entry]
	}
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) domain.Repo {
	q = repokit.RequireQueryer(q)
	return &queries{q: q, src: querykit.PGSource[domain.Entry]{Q: q, Table: domain.Table, Columns: columns, Scan: scan}}
}

func scan(row store.Row) (domain.Entry, error) {
	var e domain.Entry
	err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Body, &e.Mood, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt)
	return e, err
}

func (r *queries) List(ctx context.Context, where querykit.Cond, s querykit.Sort, w querykit.Window) (querykit.Page[domain.Entry], error) {
	p, err := querykit.Paginate(ctx, r.src, where, s, w)
	if err != nil {
		return p, perr.FromPostgresf(err, "list diary entries")
	}
	return p, nil
}

func (r *queries) Find(ctx context.Context, where querykit.Cond) (domain.Entry, error) {
	sql, args := querykit.Render(where, nil)
	e, err := store.One(ctx, r.q, scan, "SELECT "+strings.Join(columns, ", ")+" FROM "+domain.Table+" WHERE "+sql, args...)
	if err != nil {
		return e, perr.FromPostgresf(err, "find diary entry")
	}
	return e, nil
}

func (r *queries) Lock(ctx context.Context, id uuid.UUID) (domain.Entry, error) {
	return store.One(ctx, r.q, scan, "SELECT "+strings.Join(columns, ", ")+" FROM "+domain.Table+" WHERE id = $1 FOR UPDATE", id)
}

func (r *queries) TitleTaken(ctx context.Context, owner uuid.UUID, title string, except uuid.UUID) error {
	return guardkit.Unique(ctx, r.q, "title",
		`SELECT 1 FROM diary_entries WHERE owner_id = $1 AND lower(title) = lower($2) AND id <> $3 AND deleted_at IS NULL`,
		owner, title, except)
}

func (r *queries) Insert(ctx context.Context, e domain.Entry) error {
	const sql = `
INSERT INTO diary_entries (id, owner_id, title, body, mood, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	err := perr.FromPostgresf(store.ExecOne(ctx, r.q, sql, e.ID, e.OwnerID, e.Title, e.Body, e.Mood, e.CreatedAt, e.UpdatedAt), "insert diary entry")
	if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		return perr.WithField(perr.Conflictf("title is already taken"), "title")
	}
	return err
}

func (r *queries) Update(ctx context.Context, e domain.Entry, prev time.Time) error {
	const sql = `
UPDATE diary_entries SET title = $2, body = $3, mood = $4, updated_at = $5
WHERE id = $1 AND updated_at = $6 AND deleted_at IS NULL`
	err := guardkit.CAS(ctx, r.q, "diary entry", sql, e.ID, e.Title, e.Body, e.Mood, e.UpdatedAt, prev)
	if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		return perr.WithField(perr.Conflictf("title is already taken"), "title")
	}
	return err
}

func (r *queries) Archive(ctx context.Context, id uuid.UUID, at, prev time.Time) error {
	const sql = `
UPDATE diary_entries SET deleted_at = $2, updated_at = $2
WHERE id = $1 AND updated_at = $3 AND deleted_at IS NULL`
	return guardkit.CAS(ctx, r.q, "diary entry", sql, id, at, prev)
}
