package xpgx

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sqlizer is the part of squirrel the pool needs.
type Sqlizer interface {
	ToSql() (string, []interface{}, error)
}

// Pool wraps pgxpool with squirrel-aware query helpers and scany struct
// scanning.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to dsn, retrying the initial ping with exponential
// backoff so the service survives a database that is still coming up.
func NewPool(ctx context.Context, dsn string) (*Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	err = backoff.Retry(func() error {
		return pool.Ping(ctx)
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &Pool{pool: pool}, nil
}

func (p *Pool) Close() {
	p.pool.Close()
}

func (p *Pool) Execx(ctx context.Context, query Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("build query: %w", err)
	}

	return p.pool.Exec(ctx, sql, args...)
}

// Getx runs the query and scans exactly one row into dest.
func (p *Pool) Getx(ctx context.Context, dest interface{}, query Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	return pgxscan.Get(ctx, p.pool, dest, sql, args...)
}

// Selectx runs the query and scans all rows into dest (a pointer to a
// slice of structs with db tags).
func (p *Pool) Selectx(ctx context.Context, dest interface{}, query Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	return pgxscan.Select(ctx, p.pool, dest, sql, args...)
}
