package db

import (
	"path/filepath"
	"testing"
)

// TestOpenDB_SQLiteDefault はDB_DRIVER未指定時にSQLiteで接続が開くことを
// 検証します。
func TestOpenDB_SQLiteDefault(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "test.db"))

	db := OpenDB()

	if db == nil {
		t.Fatal("expected a database connection")
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying connection: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Errorf("ping failed: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
}
