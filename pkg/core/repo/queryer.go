package repo

import "context"

// Queryer runs raw SQL statements. It is embedded by Conn and Tx, so
// repositories which need statements other than ORM generated ones
// (e.g., role management) may run them on either of them.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows is the result set of a Query call. It must be closed before
// the next statement is run on the same Conn or Tx.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
}
