package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"stock_app/internal/api"
)

// SnapshotStorage はミラーのローカル永続化を抽象化します。
// スナップショットは常にコレクション全体で、1つのキーの下に保存されます。
type SnapshotStorage interface {
	// Load は保存済みスナップショットを返します。
	// まだ保存されていない場合は ok=false を返します（エラーではありません）。
	Load() (items []api.WatchlistItem, ok bool, err error)
	// Save はスナップショットを丸ごと置き換えます。
	Save(items []api.WatchlistItem) error
}

// FileSnapshot は1つのJSONファイルにスナップショットを保存する
// SnapshotStorage実装です。モバイル実装のキーバリュー型端末ストレージに
// 相当します。
type FileSnapshot struct {
	path string
}

var _ SnapshotStorage = (*FileSnapshot)(nil)

// NewFileSnapshot は指定されたパスでFileSnapshotの新しいインスタンスを生成します。
func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{path: path}
}

// Load はファイルからスナップショットを読み込みます。
func (f *FileSnapshot) Load() ([]api.WatchlistItem, bool, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}

	var items []api.WatchlistItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	return items, true, nil
}

// Save はスナップショットをファイルへ書き込みます。
// 一時ファイル経由のリネームで、途中クラッシュしても壊れた状態を残しません。
func (f *FileSnapshot) Save(items []api.WatchlistItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".watchlists-*")
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
