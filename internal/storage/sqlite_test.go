package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Veraticus/armine/internal/common"
	"github.com/Veraticus/armine/internal/model"
	"github.com/Veraticus/armine/internal/service"
)

func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func testBaskets() model.Dataset {
	return model.NewDataset([][]string{
		{"Bread", "Milk"},
		{"Bread", "Diapers", "Beer", "Eggs"},
		{"Milk", "Diapers", "Beer", "Cola"},
	})
}

func testWeather(t *testing.T) model.Dataset {
	t.Helper()
	data, err := model.NewLabeledDataset(
		[][]string{{"sunny", "hot"}, {"rainy", "cool"}},
		[]string{"no", "yes"},
		false,
	)
	if err != nil {
		t.Fatalf("Failed to build dataset: %v", err)
	}
	return data
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage(""); !errors.Is(err, ErrEmptyString) {
		t.Errorf("NewSQLiteStorage(\"\") error = %v, want ErrEmptyString", err)
	}
}

func TestSQLiteStorage_DatasetRoundTrip(t *testing.T) {
	tests := []struct {
		data func(*testing.T) model.Dataset
		name string
	}{
		{name: "transactions", data: func(*testing.T) model.Dataset { return testBaskets() }},
		{name: "labeled tabular", data: testWeather},
		{
			name: "record without items",
			data: func(*testing.T) model.Dataset {
				return model.NewDataset([][]string{{"a"}, {}, {"b", "c"}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()
			ctx := context.Background()

			want := tt.data(t)
			if err := store.SaveDataset(ctx, "data", "data.csv", want); err != nil {
				t.Fatalf("SaveDataset failed: %v", err)
			}

			got, err := store.LoadDataset(ctx, "data")
			if err != nil {
				t.Fatalf("LoadDataset failed: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("LoadDataset() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestSQLiteStorage_SaveDatasetErrors(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveDataset(ctx, "baskets", "", testBaskets()); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}

	if err := store.SaveDataset(ctx, "baskets", "", testBaskets()); !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("duplicate SaveDataset error = %v, want ErrDuplicateEntry", err)
	}
	if err := store.SaveDataset(ctx, " ", "", testBaskets()); !errors.Is(err, ErrEmptyString) {
		t.Errorf("blank name error = %v, want ErrEmptyString", err)
	}
	if err := store.SaveDataset(ctx, "empty", "", model.Dataset{}); !errors.Is(err, ErrInvalidDataset) {
		t.Errorf("empty dataset error = %v, want ErrInvalidDataset", err)
	}
}

func TestSQLiteStorage_ListDatasets(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	infos, err := store.ListDatasets(ctx)
	if err != nil {
		t.Fatalf("ListDatasets failed: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("Expected no datasets, got %d", len(infos))
	}

	if err := store.SaveDataset(ctx, "weather", "weather.csv", testWeather(t)); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}
	if err := store.SaveDataset(ctx, "baskets", "baskets.csv", testBaskets()); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}

	infos, err = store.ListDatasets(ctx)
	if err != nil {
		t.Fatalf("ListDatasets failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 datasets, got %d", len(infos))
	}

	baskets := infos[0]
	if baskets.Name != "baskets" || baskets.Source != "baskets.csv" {
		t.Errorf("Unexpected first dataset %+v", baskets)
	}
	if baskets.Records != 3 || baskets.Items != 6 {
		t.Errorf("baskets has %d records and %d items, want 3 and 6", baskets.Records, baskets.Items)
	}
	if baskets.Labeled || baskets.Tabular {
		t.Errorf("baskets should be unlabeled transactions: %+v", baskets)
	}
	if baskets.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	weather := infos[1]
	if !weather.Labeled || !weather.Tabular || weather.Records != 2 || weather.Items != 4 {
		t.Errorf("Unexpected weather dataset %+v", weather)
	}
}

func TestSQLiteStorage_DeleteDataset(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveDataset(ctx, "baskets", "", testBaskets()); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}
	if err := store.DeleteDataset(ctx, "baskets"); err != nil {
		t.Fatalf("DeleteDataset failed: %v", err)
	}

	if _, err := store.LoadDataset(ctx, "baskets"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadDataset after delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteDataset(ctx, "baskets"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteDataset error = %v, want ErrNotFound", err)
	}

	var orphans int
	if err := store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM record_items`).Scan(&orphans); err != nil {
		t.Fatalf("Failed to count items: %v", err)
	}
	if orphans != 0 {
		t.Errorf("Expected no orphaned items, got %d", orphans)
	}

	// The name is free again.
	if err := store.SaveDataset(ctx, "baskets", "", testBaskets()); err != nil {
		t.Errorf("SaveDataset after delete failed: %v", err)
	}
}

func TestSQLiteStorage_MiningRuns(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	runs := []*service.MiningRun{
		{
			Dataset: "baskets", Mode: service.ModeAssociation,
			Support: 0.2, Confidence: 0.1, Coverage: 20, Rules: 70,
			Duration: 1500 * time.Millisecond, CreatedAt: base,
		},
		{
			Dataset: "grocery", Mode: service.ModeClassification,
			Support: 0.2, Confidence: 0.1, Coverage: 20, Rules: 10, DefaultClass: "NV",
			CreatedAt: base.Add(time.Minute),
		},
		{
			Dataset: "baskets", Mode: service.ModeAssociation,
			Support: 0.4, Confidence: 0.1, Coverage: 20, Rules: 38,
			CreatedAt: base.Add(2 * time.Minute),
		},
	}
	for _, run := range runs {
		if err := store.RecordRun(ctx, run); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
		if run.ID == "" {
			t.Error("RecordRun did not assign an ID")
		}
	}

	all, err := store.ListRuns(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(all))
	}
	if all[0].ID != runs[2].ID {
		t.Errorf("Most recent run should come first, got %+v", all[0])
	}

	baskets, err := store.ListRuns(ctx, "baskets", 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(baskets) != 2 {
		t.Fatalf("Expected 2 baskets runs, got %d", len(baskets))
	}
	oldest := baskets[1]
	if oldest.Rules != 70 || oldest.Duration != 1500*time.Millisecond || !oldest.CreatedAt.Equal(base) {
		t.Errorf("Unexpected round trip %+v", oldest)
	}

	limited, err := store.ListRuns(ctx, "", 1)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 run with limit, got %d", len(limited))
	}

	grocery, err := store.ListRuns(ctx, "grocery", 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(grocery) != 1 || grocery[0].DefaultClass != "NV" || grocery[0].Mode != service.ModeClassification {
		t.Errorf("Unexpected grocery runs %+v", grocery)
	}

	if err := store.RecordRun(ctx, &service.MiningRun{Dataset: "x", Mode: "bogus", Coverage: 1}); !errors.Is(err, ErrInvalidRun) {
		t.Errorf("invalid RecordRun error = %v, want ErrInvalidRun", err)
	}
}

func TestSQLiteStorage_CanceledContext(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.SaveDataset(ctx, "baskets", "", testBaskets()); err == nil {
		t.Error("SaveDataset should fail with a canceled context")
	}
}
