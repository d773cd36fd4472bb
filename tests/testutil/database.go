package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dimitrije/signshop-api/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// shopTables lists every table the migrations create, children first.
var shopTables = []string{
	"designs",
	"quote_requests",
	"products",
	"refresh_tokens",
	"users",
}

// Postgres is a throwaway PostgreSQL container shared by one test binary.
type Postgres struct {
	container testcontainers.Container
	dsn       string
}

// StartPostgres boots postgres:16-alpine and waits until it accepts
// connections. The caller owns Terminate.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "signshop",
				"POSTGRES_PASSWORD": "signshop",
				"POSTGRES_DB":       "signshop_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("container port: %w", err)
	}

	return &Postgres{
		container: container,
		dsn:       fmt.Sprintf("postgres://signshop:signshop@%s:%s/signshop_test?sslmode=disable", host, port.Port()),
	}, nil
}

func (p *Postgres) Terminate(ctx context.Context) error {
	return p.container.Terminate(ctx)
}

// TestDB is a migrated, empty shop database for a single test.
type TestDB struct {
	DB *database.DB
}

// Connect opens a pool, applies migrations and wipes every shop table so
// each test starts from an empty database. Migrations are idempotent, so
// running them per test is safe.
func (p *Postgres) Connect(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, p.dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	tdb := &TestDB{DB: &database.DB{Pool: pool}}
	if err := tdb.DB.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	tdb.Reset(t)
	return tdb
}

// Reset truncates every shop table in one statement.
func (tdb *TestDB) Reset(t *testing.T) {
	t.Helper()
	_, err := tdb.DB.Pool.Exec(context.Background(),
		"TRUNCATE TABLE "+strings.Join(shopTables, ", ")+" RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}
}
