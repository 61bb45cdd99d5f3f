// Package testutil provides an in-memory database and quiet logger for
// repo and service tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/types"
)

// DB opens a fresh named in-memory sqlite database for the test and migrates
// the full schema. The database lives until the test's cleanup runs.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}

	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Problem{},
		&types.Attempt{},
		&types.UserProblem{},
		&types.TestResult{},
	); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Logger returns a warn-level logger so tests stay quiet.
func Logger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("initializing test logger: %v", err)
	}
	return log
}
