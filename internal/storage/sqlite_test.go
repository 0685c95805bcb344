package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	trees := []TreeRecord{
		{Seed: 1, Life: 32, Multiplier: 5, Branches: 120, Shoots: 9, Trunks: 1},
		{Seed: 2, Life: 32, Multiplier: 5, Branches: 300, Shoots: 20, Trunks: 2},
		{Seed: 3, Life: 20, Multiplier: 3, Branches: 80, Shoots: 4, Trunks: 1},
	}
	var ids []int64
	for _, tr := range trees {
		id, err := store.SaveTree(tr)
		if err != nil {
			t.Fatalf("SaveTree() failed: %v", err)
		}
		ids = append(ids, id)
	}

	recent, err := store.RecentTrees(10)
	if err != nil {
		t.Fatalf("RecentTrees() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 trees, got %d", len(recent))
	}

	// Newest first
	if recent[0].Seed != 3 || recent[2].Seed != 1 {
		t.Errorf("Expected newest first, got seeds %d..%d", recent[0].Seed, recent[2].Seed)
	}
	if recent[1].Branches != 300 || recent[1].Trunks != 2 || recent[1].Shoots != 20 {
		t.Errorf("Tree fields not preserved: %+v", recent[1])
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}

	got, err := store.TreeByID(ids[2])
	if err != nil {
		t.Fatalf("TreeByID() failed: %v", err)
	}
	if got == nil || got.Seed != 3 || got.Multiplier != 3 || got.Life != 20 {
		t.Errorf("TreeByID() = %+v", got)
	}
}

func TestStoreTreeByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.TreeByID(42)
	if err != nil {
		t.Fatalf("TreeByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing tree, got %+v", got)
	}
}

func TestStoreRecentTreesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 30; i++ {
		if _, err := store.SaveTree(TreeRecord{Seed: int64(i), Branches: i}); err != nil {
			t.Fatalf("SaveTree() failed: %v", err)
		}
	}

	recent, err := store.RecentTrees(5)
	if err != nil {
		t.Fatalf("RecentTrees() failed: %v", err)
	}
	if len(recent) != 5 {
		t.Errorf("Expected 5 trees, got %d", len(recent))
	}

	// Default limit
	recent, err = store.RecentTrees(0)
	if err != nil {
		t.Fatalf("RecentTrees() failed: %v", err)
	}
	if len(recent) != 20 {
		t.Errorf("Expected default limit 20, got %d", len(recent))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Count != 0 || stats.MaxBranches != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	for _, b := range []int{100, 300, 200} {
		if _, err := store.SaveTree(TreeRecord{Seed: int64(b), Branches: b, Shoots: 10}); err != nil {
			t.Fatalf("SaveTree() failed: %v", err)
		}
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Count != 3 {
		t.Errorf("Count = %d, expected 3", stats.Count)
	}
	if stats.MaxBranches != 300 || stats.LargestSeed != 300 {
		t.Errorf("largest tree = %d (seed %d), expected 300", stats.MaxBranches, stats.LargestSeed)
	}
	if stats.AvgBranches != 200 {
		t.Errorf("AvgBranches = %v, expected 200", stats.AvgBranches)
	}
	if stats.TotalShoots != 30 {
		t.Errorf("TotalShoots = %d, expected 30", stats.TotalShoots)
	}
	if stats.LastGrown.IsZero() {
		t.Error("Expected LastGrown to be set")
	}
}

func TestStoreClearTrees(t *testing.T) {
	store := openTestStore(t)

	store.SaveTree(TreeRecord{Seed: 1, Branches: 10})
	store.SaveTree(TreeRecord{Seed: 2, Branches: 20})

	if err := store.ClearTrees(); err != nil {
		t.Fatalf("ClearTrees() failed: %v", err)
	}

	recent, err := store.RecentTrees(10)
	if err != nil {
		t.Fatalf("RecentTrees() failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Expected no trees after clear, got %d", len(recent))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
