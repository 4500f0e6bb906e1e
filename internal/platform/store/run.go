package store

import "context"

// tenantSetting is the session setting row level security policies read
const tenantSetting = "app.tenant_id"

// RunInTenant wraps ctx with tenant and calls fn inside the provided TxRunner
// the tenant is also published as a transaction local setting for row level security
func RunInTenant(ctx context.Context, tx TxRunner, tenantID string, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithTenant(ctx, tenantID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, "SELECT set_config($1, $2, true)", tenantSetting, tenantID); err != nil {
			return err
		}
		return fn(ctx, q)
	})
}
