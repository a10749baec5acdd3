//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/calorie-api/internal/config"
	"github.com/phrazzld/calorie-api/internal/platform/postgres"
	"github.com/phrazzld/calorie-api/internal/redact"
	"github.com/stretchr/testify/require"
)

// Environment variables consulted for the test database, in order.
const (
	EnvTestDatabaseURL = "CALORIE_TEST_DATABASE_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

// TestTimeout bounds setup work such as opening the pool and migrating.
const TestTimeout = 30 * time.Second

var (
	setupOnce sync.Once
	sharedDB  *sql.DB
	setupErr  error
)

// GetTestDatabaseURL returns the configured test database URL, or "".
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestDB returns a migrated connection pool shared by every test in the
// binary. The test is skipped when no database is configured.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("%s not set; skipping database test", EnvTestDatabaseURL)
	}

	setupOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
		defer cancel()

		db, err := postgres.Open(ctx, config.DatabaseConfig{
			URL:                    dbURL,
			MaxOpenConns:           5,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 5,
		})
		if err != nil {
			setupErr = err
			return
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		if err := postgres.Migrate(ctx, db, logger, "up"); err != nil {
			_ = db.Close()
			setupErr = err
			return
		}
		sharedDB = db
	})

	require.NoError(t, setupErr, "test database setup failed (url %s): %s",
		redact.String(dbURL), redact.Error(setupErr))
	return sharedDB
}

// WithTx runs fn inside a transaction that is rolled back once fn returns.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			t.Errorf("failed to roll back test transaction: %v", rbErr)
		}
	}()

	fn(t, tx)
}
