// Package testutil provides shared helpers for service and handler tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pennywise/internal/models"
)

var dbCounter int64

// SetupTestDB creates an isolated in-memory SQLite database with the
// full schema migrated. Each call gets its own database; the connection
// is closed via t.Cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=on", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// Shared-cache in-memory databases vanish when the last connection
	// closes; a single connection keeps the schema alive for the test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&models.Ledger{},
		&models.Person{},
		&models.Account{},
		&models.Category{},
		&models.Subcategory{},
		&models.Transaction{},
		&models.Transfer{},
		&models.TransactionTemplate{},
		&models.Preference{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
