// Package database opens the connection a generated script is executed on.
//
// There is no process-wide pool: callers open an Executor from a Config,
// hand it to the runner and let the runner close it.
package database

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridoystarlord/schemato/errs"
)

// Executor runs SQL text against a database.
type Executor interface {
	// Exec runs sql, which may hold several statements.
	Exec(ctx context.Context, sql string) error
	Ping(ctx context.Context) error
	Close()
}

// Open connects according to cfg and verifies the connection with a ping.
func Open(ctx context.Context, cfg Config) (Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		exec Executor
		err  error
	)
	switch cfg.Driver {
	case DriverPq:
		exec, err = openSQL(cfg)
	default:
		exec, err = openPool(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := exec.Ping(ctx); err != nil {
		exec.Close()
		return nil, err
	}
	return exec, nil
}

// PoolExecutor is an Executor backed by a pgx connection pool.
type PoolExecutor struct {
	pool *pgxpool.Pool
}

func openPool(ctx context.Context, cfg Config) (*PoolExecutor, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(errs.KindConfig, "invalid DATABASE_URL", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errs.Wrap(errs.KindExecution, "unable to create connection pool", err)
	}
	return &PoolExecutor{pool: pool}, nil
}

// Exec uses the simple protocol so that a whole script runs in one call.
func (p *PoolExecutor) Exec(ctx context.Context, sql string) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return mapError(err, "unable to acquire connection")
	}
	defer conn.Release()

	if _, err := conn.Conn().PgConn().Exec(ctx, sql).ReadAll(); err != nil {
		return mapError(err, "executing script")
	}
	return nil
}

func (p *PoolExecutor) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return mapError(err, "unable to ping database")
	}
	return nil
}

func (p *PoolExecutor) Close() {
	p.pool.Close()
}

// SQLExecutor is an Executor backed by database/sql and lib/pq.
type SQLExecutor struct {
	db *sql.DB
}

func openSQL(cfg Config) (*SQLExecutor, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, errs.Wrap(errs.KindConfig, "invalid DATABASE_URL", err)
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(int(cfg.MaxConns))
	}
	return &SQLExecutor{db: db}, nil
}

// Exec sends sql without parameters, which lib/pq runs as a simple query.
func (s *SQLExecutor) Exec(ctx context.Context, sql string) error {
	if _, err := s.db.ExecContext(ctx, sql); err != nil {
		return mapError(err, "executing script")
	}
	return nil
}

func (s *SQLExecutor) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return mapError(err, "unable to ping database")
	}
	return nil
}

func (s *SQLExecutor) Close() {
	s.db.Close()
}
