package store

import (
	"context"
	"errors"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows feeds fixed data through the Rows contract
type fakeRows struct {
	data   [][]any
	idx    int
	err    error
	closed bool
}

func newFakeRows(data ...[]any) *fakeRows { return &fakeRows{data: data, idx: -1} }

func (r *fakeRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("scan out of range")
	}
	row := r.data[r.idx]
	if len(row) != len(dest) {
		return errors.New("dest len mismatch")
	}
	for i := range dest {
		dv := reflect.ValueOf(dest[i]).Elem()
		dv.Set(reflect.ValueOf(row[i]).Convert(dv.Type()))
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed = true }

// pgxFakeRows adds the pgx.Rows surface on top of fakeRows
type pgxFakeRows struct{ *fakeRows }

func (r pgxFakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT 1") }
func (r pgxFakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r pgxFakeRows) Values() ([]any, error)                       { return r.data[r.idx], nil }
func (r pgxFakeRows) RawValues() [][]byte                          { return nil }
func (r pgxFakeRows) Conn() *pgx.Conn                              { return nil }

type pgxFakeRow struct{ scan func(dest ...any) error }

func (r pgxFakeRow) Scan(dest ...any) error { return r.scan(dest...) }

// fakeRowQuerier records the last statement and answers with canned values
type fakeRowQuerier struct {
	sqls []string
	args [][]any

	execTag CommandTag
	execErr error

	rows     Rows
	queryErr error

	scan func(dest ...any) error
}

func (f *fakeRowQuerier) record(sql string, args []any) {
	f.sqls = append(f.sqls, sql)
	f.args = append(f.args, args)
}

func (f *fakeRowQuerier) Exec(_ context.Context, sql string, args ...any) (CommandTag, error) {
	f.record(sql, args)
	return f.execTag, f.execErr
}

func (f *fakeRowQuerier) Query(_ context.Context, sql string, args ...any) (Rows, error) {
	f.record(sql, args)
	return f.rows, f.queryErr
}

func (f *fakeRowQuerier) QueryRow(_ context.Context, sql string, args ...any) Row {
	f.record(sql, args)
	return pgxFakeRow{scan: f.scan}
}

// fakeTxRunner runs fn against its embedded querier
type fakeTxRunner struct {
	fakeRowQuerier
	txCalls int
	pingErr error
}

func (f *fakeTxRunner) Tx(_ context.Context, fn func(q RowQuerier) error) error {
	f.txCalls++
	return fn(&f.fakeRowQuerier)
}

func (f *fakeTxRunner) Ping(context.Context) error { return f.pingErr }

// pgxFake implements pgxQuerier, txBeginner and pgx.Tx for adapter tests
type pgxFake struct {
	execFn func(sql string, args ...any) (pgconn.CommandTag, error)
	rows   *fakeRows
	scan   func(dest ...any) error

	committed  bool
	rolledBack bool
}

func (f *pgxFake) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.execFn != nil {
		return f.execFn(sql, args...)
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (f *pgxFake) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if f.rows == nil {
		return nil, errors.New("no rows configured")
	}
	return pgxFakeRows{f.rows}, nil
}

func (f *pgxFake) QueryRow(context.Context, string, ...any) pgx.Row {
	return pgxFakeRow{scan: f.scan}
}

func (f *pgxFake) Begin(context.Context) (pgx.Tx, error) { return f, nil }
func (f *pgxFake) Commit(context.Context) error          { f.committed = true; return nil }
func (f *pgxFake) Rollback(context.Context) error        { f.rolledBack = true; return nil }

func (f *pgxFake) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not implemented")
}
func (f *pgxFake) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (f *pgxFake) LargeObjects() pgx.LargeObjects                         { return pgx.LargeObjects{} }
func (f *pgxFake) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not implemented")
}
func (f *pgxFake) Conn() *pgx.Conn { return nil }
