// Package databasetest opens throwaway databases for tests.
package databasetest

import (
	"fmt"
	"testing"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logging"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Open opens an isolated, migrated in-memory SQLite database that is
// closed when the test finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()),
	}
	db, err := database.Open(cfg, false, logging.Discard())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
