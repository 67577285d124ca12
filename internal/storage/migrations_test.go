package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("Failed to get schema version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("Schema version = %d, want %d", version, ExpectedSchemaVersion)
	}

	for _, table := range []string{"datasets", "records", "record_items", "mining_runs"} {
		var count int
		err := store.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to check table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("Table %s was not created", table)
		}
	}

	var indexCount int
	err = store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'index' AND name = 'idx_record_items_item'
	`).Scan(&indexCount)
	if err != nil {
		t.Fatalf("Failed to check index: %v", err)
	}
	if indexCount != 1 {
		t.Error("Item index was not created")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "armine.db")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		store, err := NewSQLiteStorage(dbPath)
		if err != nil {
			t.Fatalf("Failed to open storage: %v", err)
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			t.Fatalf("Migrate run %d failed: %v", i+1, err)
		}
		_ = store.Close()
	}
}

func TestMigrations_AreOrdered(t *testing.T) {
	for i, m := range migrations {
		if m.Version != i+1 {
			t.Errorf("Migration %d has version %d", i, m.Version)
		}
		if m.Description == "" {
			t.Errorf("Migration %d has no description", m.Version)
		}
	}
	if last := migrations[len(migrations)-1].Version; last != ExpectedSchemaVersion {
		t.Errorf("Last migration %d does not match ExpectedSchemaVersion %d", last, ExpectedSchemaVersion)
	}
}
