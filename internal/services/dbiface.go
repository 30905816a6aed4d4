package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Row is the single-row scan surface services depend on. pgx.Row satisfies
// it directly.
type Row interface {
	Scan(dest ...any) error
}

// Rows is the multi-row surface. pgx.Rows satisfies it directly.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
}

// CommandTag reports the outcome of an Exec. pgconn.CommandTag satisfies it.
type CommandTag interface {
	RowsAffected() int64
}

// DBConn is the query surface shared by pools and open transactions.
type DBConn interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Tx is an open transaction.
type Tx interface {
	DBConn
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DB is a connection source that can also open transactions.
type DB interface {
	DBConn
	Begin(ctx context.Context) (Tx, error)
}

// pgxQuerier is the slice of pgx shared by *pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querierAdapter narrows a pgxQuerier to DBConn. The results need no
// wrapping: pgx's row, rows, and command tag types already satisfy the
// interfaces above.
type querierAdapter struct {
	q pgxQuerier
}

func (a querierAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return a.q.Exec(ctx, sql, args...)
}

func (a querierAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := a.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (a querierAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return a.q.QueryRow(ctx, sql, args...)
}

// PoolAdapter presents a *pgxpool.Pool as a DB.
type PoolAdapter struct {
	querierAdapter
	begin func(ctx context.Context) (pgx.Tx, error)
}

func NewPoolAdapter(pool *pgxpool.Pool) *PoolAdapter {
	return &PoolAdapter{querierAdapter: querierAdapter{q: pool}, begin: pool.Begin}
}

func (p *PoolAdapter) Begin(ctx context.Context) (Tx, error) {
	tx, err := p.begin(ctx)
	if err != nil {
		return nil, err
	}
	return txAdapter{querierAdapter: querierAdapter{q: tx}, tx: tx}, nil
}

type txAdapter struct {
	querierAdapter
	tx pgx.Tx
}

func (t txAdapter) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t txAdapter) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

var (
	_ DB = (*PoolAdapter)(nil)
	_ Tx = txAdapter{}
)
