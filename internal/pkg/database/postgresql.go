package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	*pgxpool.Pool
}

// PoolConfig tunes the connection pool. Zero values fall back to 25/5
// connections and a 10 second connect timeout.
type PoolConfig struct {
	MaxConns       int32
	MinConns       int32
	ConnectTimeout time.Duration
}

func NewPostgreSQLDB(dsn string, opts ...PoolConfig) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}

	pc := PoolConfig{MaxConns: 25, MinConns: 5, ConnectTimeout: 10 * time.Second}
	if len(opts) > 0 {
		if opts[0].MaxConns > 0 {
			pc.MaxConns = opts[0].MaxConns
		}
		if opts[0].MinConns > 0 {
			pc.MinConns = opts[0].MinConns
		}
		if opts[0].ConnectTimeout > 0 {
			pc.ConnectTimeout = opts[0].ConnectTimeout
		}
	}

	// Connection pool settings
	config.MaxConns = pc.MaxConns
	config.MinConns = pc.MinConns

	ctx, cancel := context.WithTimeout(context.Background(), pc.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
