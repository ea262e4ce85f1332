package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"

	"image-management-server/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// SetupDB initializes a unique in-memory SQLite database for testing,
// sets the global db.DB, and migrates the schema including the main image indexes.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := db.SQLiteDSN(fmt.Sprintf("file:imt_%d?mode=memory&cache=shared", seq))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	prevDB := db.DB
	t.Cleanup(func() {
		if db.DB == gdb {
			db.DB = prevDB
		}
		_ = sqlDB.Close()
	})

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db.DB = gdb
	return gdb
}
