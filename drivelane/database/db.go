package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

// New dials the database with retries, then builds the pgx pool and the
// bun client on top of it.
func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))

	var conn net.Conn
	var err error
	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = net.DialTimeout("tcp", addr, defaultConnTimeout)
		if err == nil {
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}
	conn.Close()

	poolConfig, err := pgxpool.ParseConfig(connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connString(cfg) + "&sslmode=disable")))
	bunDB := bun.NewDB(sqldb, pgdialect.New())

	return &DB{pool: pool, bunDB: bunDB}, nil
}

func connString(cfg DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

// BunDB returns the bun client.
func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

// Pool returns the raw pgx pool.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Ping verifies connectivity, used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

// ExecWithLog executes a statement on the pool and logs timing.
func (db *DB) ExecWithLog(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, query, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", query),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", query),
		slog.Duration("took", duration),
		slog.Int64("affected_rows", result.RowsAffected()),
	)
	return result, nil
}

// InitializeSchema creates all required tables and indexes.
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []interface{}{
		(*models.Dealer)(nil),
		(*models.Listing)(nil),
		(*models.User)(nil),
		(*models.Session)(nil),
		(*models.SavedComparison)(nil),
		(*models.SaleRecord)(nil),
		(*models.MarketSnapshot)(nil),
	}

	for _, model := range tables {
		_, err := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_listings_ref ON listings(ref);",
		"CREATE INDEX IF NOT EXISTS idx_listings_dealer_id ON listings(dealer_id);",
		"CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status);",
		"CREATE INDEX IF NOT EXISTS idx_listings_category ON listings(category) WHERE status = 'active';",
		"CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price) WHERE status = 'active';",
		"CREATE INDEX IF NOT EXISTS idx_listings_search ON listings(category, fuel_type, price) WHERE status = 'active';",
		"CREATE INDEX IF NOT EXISTS idx_dealers_slug ON dealers(slug);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions(token);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);",
		"CREATE INDEX IF NOT EXISTS idx_saved_comparisons_user ON saved_comparisons(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_sale_records_dealer ON sale_records(dealer_id, sold_at);",
		"CREATE INDEX IF NOT EXISTS idx_sale_records_category ON sale_records(category, sold_at);",
		"CREATE INDEX IF NOT EXISTS idx_market_snapshots_category ON market_snapshots(category, timestamp);",
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
