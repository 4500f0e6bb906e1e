package guardkit

import (
	"context"
	"fmt"
	"time"

	"rolegate/internal/modkit/repokit"
	perr "rolegate/internal/platform/errors"

	"github.com/google/uuid"
)

// RefRow is the part of a referenced row a reference check needs
type RefRow struct {
	TenantID  uuid.NullUUID
	DeletedAt *time.Time
}

// RefLoader reads a referenced row; a missing row is perr.ErrNotFound
type RefLoader func(ctx context.Context, q repokit.Queryer, id uuid.UUID) (RefRow, error)

// PGRef loads id, organization_id and deleted_at from table
func PGRef(table string) RefLoader {
	sql := fmt.Sprintf("SELECT organization_id, deleted_at FROM %s WHERE id = $1", table)
	return func(ctx context.Context, q repokit.Queryer, id uuid.UUID) (RefRow, error) {
		var r RefRow
		if err := q.QueryRow(ctx, sql, id).Scan(&r.TenantID, &r.DeletedAt); err != nil {
			if perr.IsNoRows(err) {
				return RefRow{}, perr.ErrNotFound
			}
			return RefRow{}, perr.FromPostgresf(err, "load %s", table)
		}
		return r, nil
	}
}

// InTenant checks that the row id names exists, is live and belongs to tenant
// every failure is reported as not found on field so foreign rows stay invisible
func InTenant(field string, id, tenant uuid.UUID, load RefLoader) repokit.MidHook {
	return func(ctx context.Context, q repokit.Queryer) error {
		r, err := load(ctx, q, id)
		switch {
		case perr.IsCode(err, perr.ErrorCodeNotFound):
			return perr.WithField(perr.NotFoundf("%s not found", field), field)
		case err != nil:
			return err
		case r.DeletedAt != nil, !r.TenantID.Valid, r.TenantID.UUID != tenant:
			return perr.WithField(perr.NotFoundf("%s not found", field), field)
		}
		return nil
	}
}
