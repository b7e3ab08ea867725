package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fintrack/fintrack/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Open opens a Postgres connection pool and checks it is reachable.
func Open(ctx context.Context, cfg config.Database) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	poolConfig.ConnConfig.Tracer = queryTracer{}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database %s at %s:%d: %w", cfg.Name, cfg.Host, cfg.Port, err)
	}
	log.Infof("Connected to database %s at %s:%d (max %d connections)", cfg.Name, cfg.Host, cfg.Port, poolConfig.MaxConns)
	return pool, nil
}

func connectionString(cfg config.Database) string {
	escapedPassword := strings.ReplaceAll(cfg.Pass, "'", "\\'")
	return fmt.Sprintf("host=%s port=%d user=%s password='%s' dbname=%s sslmode=disable options='-c search_path=%s'",
		cfg.Host, cfg.Port, cfg.User, escapedPassword, cfg.Name, cfg.Schema)
}

// migrationURL is the golang-migrate form of the connection, with the schema as search_path.
func migrationURL(cfg config.Database) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Pass),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
		RawQuery: url.Values{
			"sslmode":     []string{"disable"},
			"search_path": []string{cfg.Schema},
		}.Encode(),
	}
	return u.String()
}

// Migrate applies every pending migration.
func Migrate(cfg config.Database) error {
	migrationsPath := cfg.Migrations
	if migrationsPath == "" {
		found, err := findMigrationsPath()
		if err != nil {
			return fmt.Errorf("failed to locate migrations directory: %w", err)
		}
		migrationsPath = found
	}

	m, err := migrate.New("file://"+filepath.ToSlash(migrationsPath), migrationURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	if version, dirty, err := m.Version(); err == nil {
		log.Infof("Database schema at version %d (dirty: %v)", version, dirty)
	}
	return nil
}

// findMigrationsPath walks up from the working directory to the first "migrations" directory, so tests
// running inside a package directory use the same files as the binary.
func findMigrationsPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("migrations directory not found")
		}
		dir = parent
	}
}

type queryStartKey struct{}

type queryStart struct {
	sql   string
	start time.Time
}

// queryTracer logs every statement with its duration at trace level.
type queryTracer struct{}

func (queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	if !log.IsLevelEnabled(log.TraceLevel) {
		return ctx
	}
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, start: time.Now()})
}

func (queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	started, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	entry := log.WithFields(log.Fields{
		"duration": time.Since(started.start),
		"rows":     data.CommandTag.RowsAffected(),
	})
	if data.Err != nil {
		entry = entry.WithError(data.Err)
	}
	entry.Tracef("sql: %s", strings.Join(strings.Fields(started.sql), " "))
}
