package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset shared by *pgxpool.Pool and pgx.Tx, so repositories
// run the same SQL inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Transactor runs fn inside a unit of work. Repositories called with the
// context handed to fn participate in the same transaction; an error from fn
// rolls it back. The pgx implementation lives in repository/postgresql.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
