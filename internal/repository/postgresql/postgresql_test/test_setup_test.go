package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/timepulse/timepulse-backend/internal/pkg/database"
)

// TestDatabaseSetup holds a connection to the integration database.
type TestDatabaseSetup struct {
	DB *database.DB
}

var migrationPath = filepath.Join("..", "..", "..", "..", "migrations", "0001_init.sql")

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping PostgreSQL integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 4})
	require.NoError(t, err, "failed to connect to test database")

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.migrate(ctx))
	require.NoError(t, setup.TruncateAllTables(ctx))

	t.Cleanup(setup.Close)
	return setup
}

func (s *TestDatabaseSetup) migrate(ctx context.Context) error {
	var exists bool
	if err := s.DB.QueryRow(ctx, `SELECT to_regclass('public.weekly_hours') IS NOT NULL`).Scan(&exists); err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if exists {
		return nil
	}

	schema, err := os.ReadFile(migrationPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := s.DB.Exec(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// TruncateAllTables removes every row written by earlier tests.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{
		"refresh_tokens",
		"users",
		"leave_requests",
		"leave_balances",
		"weekly_hours",
	}

	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}

// CreateUser inserts a user row and returns its id.
func (s *TestDatabaseSetup) CreateUser(t *testing.T, tenantID, employeeID, name, email, passwordHash, role string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := s.DB.Exec(context.Background(), `
		INSERT INTO users (id, tenant_id, employee_id, employee_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, tenantID, employeeID, name, email, passwordHash, role)
	require.NoError(t, err)
	return id
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
