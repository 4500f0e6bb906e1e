// Package pgtest starts a disposable Postgres for integration tests (build tag integration_pg)
package pgtest
