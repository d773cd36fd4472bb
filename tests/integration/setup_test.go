package integration

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/dimitrije/signshop-api/tests/testutil"
)

var (
	postgres    *testutil.Postgres
	postgresErr error
)

// TestMain starts one PostgreSQL container for the whole package. When Docker
// is unavailable the tests skip instead of failing.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	postgres, postgresErr = testutil.StartPostgres(ctx)

	code := m.Run()

	if postgres != nil {
		if err := postgres.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to terminate postgres container: %v\n", err)
		}
	}
	os.Exit(code)
}

// setupTest returns an empty, migrated database.
func setupTest(t *testing.T) *testutil.TestDB {
	t.Helper()
	if postgresErr != nil {
		t.Skipf("postgres container unavailable: %v", postgresErr)
	}
	if postgres == nil {
		t.Skip("integration tests need a postgres container")
	}
	return postgres.Connect(t)
}
