// Package database holds the PostgreSQL adapter: connection pooling,
// lock-guarded schema migrations, and the repositories backing the
// key-value store and the points ledger.
package database
