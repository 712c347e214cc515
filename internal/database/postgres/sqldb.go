package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"campus-jobs/internal/database"
)

// SQL adapts a database/sql handle to database.DB. It backs the seeder when
// it runs over the goose connection and the sqlmock repository tests.
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

func (s *SQL) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return sqlExec(ctx, s.db, query, args...)
}

func (s *SQL) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return sqlQuery(ctx, s.db, query, args...)
}

func (s *SQL) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

func (s *SQL) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("nil db")
	}
	return s.db.PingContext(ctx)
}

func (s *SQL) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQL) Begin(ctx context.Context) (database.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return sqlTx{tx: tx}, nil
}

func (s *SQL) SQLDB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.db
}

type sqlTx struct {
	tx *sql.Tx
}

func (t sqlTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return sqlExec(ctx, t.tx, query, args...)
}

func (t sqlTx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return sqlQuery(ctx, t.tx, query, args...)
}

func (t sqlTx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t sqlTx) Commit(context.Context) error   { return t.tx.Commit() }
func (t sqlTx) Rollback(context.Context) error { return t.tx.Rollback() }

type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func sqlExec(ctx context.Context, c sqlConn, query string, args ...any) (int64, error) {
	res, err := c.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func sqlQuery(ctx context.Context, c sqlConn, query string, args ...any) (database.Rows, error) {
	rows, err := c.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows: rows}, nil
}

type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Close()                 { _ = r.rows.Close() }
func (r sqlRows) Next() bool             { return r.rows.Next() }
func (r sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r sqlRows) Err() error             { return r.rows.Err() }
