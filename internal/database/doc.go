// Package database owns the gateway's single PostgreSQL connection and the
// named statements compiled on it at startup.
//
// Bootstrap runs the schema scripts (idempotent DDL) and then prepares every
// query script under its name. Handlers execute statements by name only:
//
//	err := reg.Exec(ctx, database.StmtInsertTrade, symbol, price, qty, seconds, exchange)
//
// The pool is capped at one connection, so concurrent callers queue on it.
// When that connection breaks, the replacement re-prepares every statement
// before it is handed out.
package database
