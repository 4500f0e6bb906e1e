// Package storetest provides an in-process TxRunner for service tests
// repos are bound through fakes, so the runner only records what the service publishes
package storetest

import (
	"context"
	"errors"
	"sync"

	"rolegate/internal/platform/store"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNoSQL is returned by Query and QueryRow; services under test should not reach them
var ErrNoSQL = errors.New("storetest: no database behind this runner")

// Tx runs fn inline with itself as the querier
type Tx struct {
	mu      sync.Mutex
	txs     int
	tenants []string
	execs   []string
}

var _ store.TxRunner = (*Tx)(nil)

// Tx implements store.TxRunner
func (t *Tx) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	t.mu.Lock()
	t.txs++
	if tid, ok := store.TenantID(ctx); ok {
		t.tenants = append(t.tenants, tid)
	}
	t.mu.Unlock()
	return fn(t)
}

// Exec records sql and reports one row affected
func (t *Tx) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	t.mu.Lock()
	t.execs = append(t.execs, sql)
	t.mu.Unlock()
	return pgconn.NewCommandTag("SELECT 1"), nil
}

// Query always fails with ErrNoSQL
func (t *Tx) Query(context.Context, string, ...any) (store.Rows, error) { return nil, ErrNoSQL }

// QueryRow returns a row whose Scan fails with ErrNoSQL
func (t *Tx) QueryRow(context.Context, string, ...any) store.Row { return noRow{} }

type noRow struct{}

func (noRow) Scan(...any) error { return ErrNoSQL }

// Txs reports how many transactions were opened
func (t *Tx) Txs() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.txs
}

// Tenants lists the tenant ids published per transaction, in order
func (t *Tx) Tenants() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.tenants...)
}

// Execs lists the statements run directly on the runner
func (t *Tx) Execs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.execs...)
}
