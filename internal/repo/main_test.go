package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/nomadsuite/compliance/migrations"
	"github.com/nomadsuite/compliance/testutil"
)

// TestMain applies all pending migrations to the test database once for the
// whole test binary, so individual tests never deal with schema state.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		// Every test in this package skips via testutil.NewPool.
		os.Exit(m.Run())
	}

	// goose needs database/sql, and TestMain has no *testing.T for testutil.NewSQLDB.
	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	defer db.Close()

	if _, err := migrations.Up(context.Background(), db); err != nil {
		log.Fatalf("TestMain: run migrations: %v", err)
	}

	os.Exit(m.Run())
}
