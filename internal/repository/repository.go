// Package repository provides pgx-backed data access for the storefront.
// Methods that must participate in a checkout transaction accept a
// database.TxQuerier; everything else runs against the pool.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool defines the database operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, and tests substitute mocks.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// pg error code for unique constraint violations.
const uniqueViolation = "23505"
