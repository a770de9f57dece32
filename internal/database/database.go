// Package database contains the logic for establishing connections to
// the PostgreSQL database.
//
// It handles:
//   - validating the connection string (PostgreSQL only)
//   - creating a pgx connection pool (pgxpool) with the configured
//     size, overflow, recycle, and pre-ping behavior
//   - wiring SQL query tracing/logging (pgx tracelog over zerolog)
package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/avaagri/farmcrm/internal/config"
	"github.com/avaagri/farmcrm/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// Database wraps the pgx connection pool and a logger, providing one
// handle that is passed into the store.
type Database struct {
	Pool *pgxpool.Pool
	log  zerolog.Logger
}

// New creates the PostgreSQL connection pool.
//
// The connection string must use the postgres or postgresql scheme;
// any other store family is rejected before a connection is attempted.
// Pool options are applied from config, and a bounded startup ping
// verifies the store is reachable.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Database, error) {
	if err := validateDSN(cfg.Database.URL); err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing pgx pool config: %w", err)
	}
	applyPoolOptions(poolConfig, cfg.Database)

	// SQL statement logging is noisy, so it is only wired up in the
	// local environment.
	if cfg.Primary.Env == "local" {
		pgxLogger := logger.NewPgxLogger(log)
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: logger.PgxTraceLogLevel(log.GetLevel()),
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	log.Info().
		Int32("max_conns", poolConfig.MaxConns).
		Int32("min_conns", poolConfig.MinConns).
		Msg("connected to the database")

	return &Database{Pool: pool, log: log}, nil
}

// Close closes the database connection pool.
func (db *Database) Close() {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
}

// validateDSN rejects connection strings that do not name the
// PostgreSQL store family.
func validateDSN(dsn string) error {
	u, err := url.Parse(dsn)
	if err != nil {
		return fmt.Errorf("parsing connection string: %w", err)
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		return nil
	default:
		return fmt.Errorf("unsupported store family %q: only PostgreSQL connections are allowed", u.Scheme)
	}
}

// applyPoolOptions maps the upstream pool vocabulary onto pgxpool:
// the base pool is kept warm (MinConns) and overflow raises the hard
// cap (MaxConns); recycle bounds connection lifetime; pre-ping
// validates each connection as it is handed out.
func applyPoolOptions(poolConfig *pgxpool.Config, db config.DatabaseConfig) {
	poolConfig.MinConns = int32(db.PoolSize)
	poolConfig.MaxConns = int32(db.PoolSize + db.MaxOverflow)
	poolConfig.MaxConnLifetime = db.PoolRecycle
	poolConfig.MaxConnIdleTime = db.PoolRecycle / 2

	if db.PoolPrePing {
		poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return conn.Ping(pingCtx) == nil
		}
	}
}
