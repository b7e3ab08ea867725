package test_utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fintrack/fintrack/internal/config"
	"github.com/fintrack/fintrack/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dbName     = "fintrack"
	dbUser     = "test_fintrack"
	dbPassword = "test_fintrack"
	dbSchema   = "fintrack"
)

// TestDB is a migrated Postgres started in a container on first use and shared by the tests of a package.
// Tests using it are skipped with -short.
type TestDB struct {
	once      sync.Once
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	err       error
}

func (d *TestDB) Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	d.once.Do(func() {
		d.container, d.pool, d.err = startPostgres(context.Background())
	})
	if d.err != nil {
		t.Fatalf("failed to start test database: %v", d.err)
	}
	return d.pool
}

// Close stops the container. Call it from TestMain after m.Run.
func (d *TestDB) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
	if d.container != nil {
		if err := d.container.Terminate(context.Background()); err != nil {
			log.Errorf("failed to terminate postgres container: %v", err)
		}
	}
}

// Truncate empties the given tables and restarts their id sequences.
func Truncate(t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", "))
	if _, err := pool.Exec(context.Background(), query); err != nil {
		t.Fatalf("failed to truncate %v: %v", tables, err)
	}
}

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, *pgxpool.Pool, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find project root: %w", err)
	}

	container, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithInitScripts(filepath.Join(projectRoot, "dev", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return container, nil, err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return container, nil, err
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   dbUser,
		Pass:   dbPassword,
		Name:   dbName,
		Schema: dbSchema,
	}
	if err := database.Migrate(cfg); err != nil {
		return container, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	pool, err := database.Open(ctx, cfg)
	if err != nil {
		return container, nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	return container, pool, nil
}

// findProjectRoot walks up from the working directory to the directory holding go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root")
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
