package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"stock_app/internal/api"
)

// TestFileSnapshot_LoadMissing は未保存時にok=falseが返ることを検証します。
// エラーではありません。
func TestFileSnapshot_LoadMissing(t *testing.T) {
	t.Parallel()

	snap := NewFileSnapshot(filepath.Join(t.TempDir(), "watchlists.json"))

	items, ok, err := snap.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing file")
	}
	if items != nil {
		t.Errorf("expected nil items, got %v", items)
	}
}

// TestFileSnapshot_SaveLoad は保存と読み込みの往復を検証します。
func TestFileSnapshot_SaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "watchlists.json")
	snap := NewFileSnapshot(path)

	saved := []api.WatchlistItem{
		{Name: "Tech Giants", StockCount: 2, Stocks: []string{"AAPL", "MSFT"}},
		{Name: "Empty", StockCount: 0, Stocks: []string{}},
	}
	if err := snap.Save(saved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, ok, err := snap.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true after save")
	}
	if len(items) != 2 || items[0].Name != "Tech Giants" || items[0].StockCount != 2 {
		t.Errorf("unexpected items: %+v", items)
	}
	if len(items[0].Stocks) != 2 || items[0].Stocks[1] != "MSFT" {
		t.Errorf("unexpected stocks: %v", items[0].Stocks)
	}
}

// TestFileSnapshot_SaveReplaces は保存が全置き換えであることを検証します。
func TestFileSnapshot_SaveReplaces(t *testing.T) {
	t.Parallel()

	snap := NewFileSnapshot(filepath.Join(t.TempDir(), "watchlists.json"))

	if err := snap.Save([]api.WatchlistItem{{Name: "Old", Stocks: []string{"OLD"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := snap.Save([]api.WatchlistItem{{Name: "New", Stocks: []string{"NEW"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, ok, err := snap.Load()
	if err != nil || !ok {
		t.Fatalf("unexpected load result: ok=%v err=%v", ok, err)
	}
	if len(items) != 1 || items[0].Name != "New" {
		t.Errorf("expected old snapshot to be replaced, got %+v", items)
	}
}

// TestFileSnapshot_CreatesParentDir は親ディレクトリがなくても保存できる
// ことを検証します。
func TestFileSnapshot_CreatesParentDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "watchlists.json")
	snap := NewFileSnapshot(path)

	if err := snap.Save([]api.WatchlistItem{{Name: "Tech"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected snapshot file to exist: %v", err)
	}
}

// TestFileSnapshot_CorruptFile は壊れたJSONがエラーになることを検証します。
func TestFileSnapshot_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "watchlists.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	_, ok, err := NewFileSnapshot(path).Load()
	if err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
	if ok {
		t.Error("expected ok=false for corrupt snapshot")
	}
}
