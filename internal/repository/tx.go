package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/banquet-booking/internal/database"
)

// querier is satisfied by *sql.Conn and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// withConn acquires a connection for the duration of fn and releases it on
// every exit path, panics included.
func withConn(ctx context.Context, p database.Provider, fn func(conn *sql.Conn) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

// withTx runs fn inside a transaction on a freshly acquired connection.  The
// transaction commits only when fn returns nil; any error or panic rolls
// it back so no partial write is ever visible.
func withTx(ctx context.Context, p database.Provider, op string, fn func(tx *sql.Tx) error) error {
	return withConn(ctx, p, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return classify(err, op+": begin", nil)
		}
		committed := false
		defer func() {
			if !committed {
				_ = tx.Rollback()
			}
		}()
		if err := fn(tx); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return classify(err, op+": commit", nil)
		}
		committed = true
		return nil
	})
}
