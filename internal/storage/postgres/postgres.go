// Package postgres stores generated statblocks in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/mookgen/internal/config"
)

// ErrSchemaMissing is returned when the history database has not been migrated.
var ErrSchemaMissing = errors.New("statblock history schema missing; run cmd/migrate")

// ErrSchemaDirty is returned when a previous migration failed part way.
var ErrSchemaDirty = errors.New("statblock history schema is dirty")

const connectTimeout = 5 * time.Second

// Pool is the connection pool of the statblock history database.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to the history database described by cfg.
//
// Precondition: cfg must contain valid database connection parameters.
// Postcondition: Returns a Pool that answered a ping within connectTimeout,
// or a non-nil error.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "mookgen"

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	return &Pool{pool: pool}, nil
}

// SchemaVersion reads the migration version golang-migrate recorded.
//
// Postcondition: Returns ErrSchemaMissing before the first migration and
// ErrSchemaDirty when the last migration did not finish.
func (p *Pool) SchemaVersion(ctx context.Context) (uint, error) {
	var (
		version int64
		dirty   bool
	)
	err := p.pool.QueryRow(ctx, `SELECT version, dirty FROM schema_migrations LIMIT 1`).Scan(&version, &dirty)
	if err != nil {
		// SQLSTATE 42P01 is undefined_table.
		var pgErr interface{ SQLState() string }
		if errors.Is(err, pgx.ErrNoRows) || (errors.As(err, &pgErr) && pgErr.SQLState() == "42P01") {
			return 0, ErrSchemaMissing
		}
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	if dirty {
		return uint(version), fmt.Errorf("%w at version %d", ErrSchemaDirty, version)
	}
	return uint(version), nil
}

// Statblocks returns a repository over this pool.
func (p *Pool) Statblocks() *StatblockRepository {
	return NewStatblockRepository(p.pool)
}

// Close releases all pool resources.
//
// Postcondition: The pool is no longer usable after calling Close.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
