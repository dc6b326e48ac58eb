package watchlist

import (
	"context"
	"strings"
	"sync"

	"stock_app/internal/api"
)

// State はSyncStoreのセッション内状態です。
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	// StateError はロード/リフレッシュ失敗の回復可能な状態です。
	// 「空のReady」とは区別され、再試行で抜けられます。
	StateError
)

// String はStateの表示名を返します。
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// RegistryClient はサーバ側レジストリへの呼び出しを抽象化します。
// Goの慣例に従い、インターフェースは利用者（store）側で定義します。
type RegistryClient interface {
	FetchWatchlists(ctx context.Context) ([]api.WatchlistItem, error)
	AddToWatchlist(ctx context.Context, watchlistName, symbol string, createNew bool) error
	RemoveFromWatchlist(ctx context.Context, watchlistName, symbol string) error
	CreateWatchlist(ctx context.Context, name string) error
	DeleteWatchlist(ctx context.Context, name string) error
}

// SyncStore はサーバ所有のウォッチリスト状態のローカルミラーです。
//
// ミラーは正本ではありません。すべてのミューテーションは
// (1) レジストリへ送信して成否を待つ → (2) 成功時のみRefreshで全体を再同期
// の2段階プロトコルで、ミラーをその場でパッチすることはありません。
// 失敗時はローカル状態に手を付けず、エラーをそのまま呼び出し元へ返します。
// ミラーの更新は常にスナップショット全体の置き換えなので、レジストリ側で
// 削除済みのエントリがミラーに残り続けることはありません。
type SyncStore struct {
	client  RegistryClient
	storage SnapshotStorage

	mu         sync.RWMutex
	state      State
	lastErr    error
	watchlists []api.WatchlistItem
}

// NewSyncStore はSyncStoreの新しいインスタンスを生成します。
func NewSyncStore(client RegistryClient, storage SnapshotStorage) *SyncStore {
	return &SyncStore{client: client, storage: storage, state: StateUninitialized}
}

// Load は初回ロードを行います。ローカルスナップショットがあればレジストリに
// 問い合わせずそれを採用します（明示的なRefreshまでローカルを信頼する方針）。
// なければレジストリから全体を取得して採用し、スナップショットを保存します。
func (s *SyncStore) Load(ctx context.Context) error {
	s.setLoading()

	items, ok, err := s.storage.Load()
	if err == nil && ok {
		s.adopt(items)
		return nil
	}
	// スナップショットが壊れている場合は捨ててリモートから取り直す

	return s.Refresh(ctx)
}

// Refresh はレジストリから全コレクションを取得し、ローカル状態を丸ごと
// 置き換えて再永続化します。ローカル/リモートの乖離を直せる唯一の経路です。
func (s *SyncStore) Refresh(ctx context.Context) error {
	s.setLoading()

	items, err := s.client.FetchWatchlists(ctx)
	if err != nil {
		s.setError(err)
		return err
	}

	s.adopt(items)
	if err := s.storage.Save(items); err != nil {
		// 永続化失敗はメモリ上のミラーを巻き戻さない。次回のLoadが
		// リモートへフォールバックするだけで、収束性は保たれる
		return err
	}
	return nil
}

// AddStock は銘柄追加をレジストリへ送り、成功したらミラーを再同期します。
func (s *SyncStore) AddStock(ctx context.Context, watchlistName, symbol string, createNew bool) error {
	if err := s.client.AddToWatchlist(ctx, watchlistName, symbol, createNew); err != nil {
		s.recordErr(err)
		return err
	}
	return s.Refresh(ctx)
}

// RemoveStock は銘柄削除をレジストリへ送り、成功したらミラーを再同期します。
func (s *SyncStore) RemoveStock(ctx context.Context, watchlistName, symbol string) error {
	if err := s.client.RemoveFromWatchlist(ctx, watchlistName, symbol); err != nil {
		s.recordErr(err)
		return err
	}
	return s.Refresh(ctx)
}

// CreateWatchlist はウォッチリスト作成をレジストリへ送り、成功したら
// ミラーを再同期します。
func (s *SyncStore) CreateWatchlist(ctx context.Context, name string) error {
	if err := s.client.CreateWatchlist(ctx, name); err != nil {
		s.recordErr(err)
		return err
	}
	return s.Refresh(ctx)
}

// DeleteWatchlist はウォッチリスト削除をレジストリへ送り、成功したら
// ミラーを再同期します。
func (s *SyncStore) DeleteWatchlist(ctx context.Context, name string) error {
	if err := s.client.DeleteWatchlist(ctx, name); err != nil {
		s.recordErr(err)
		return err
	}
	return s.Refresh(ctx)
}

// IsStockInWatchlist は銘柄がいずれかのウォッチリストに含まれるかを
// ローカルミラーだけで判定します。問い合わせ側のシンボルは大文字化して
// から、保存済みの大文字シンボルと比較します。
func (s *SyncStore) IsStockInWatchlist(symbol string) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.watchlists {
		for _, st := range w.Stocks {
			if st == symbol {
				return true
			}
		}
	}
	return false
}

// Watchlists は現在のミラーのコピーを返します。
func (s *SyncStore) Watchlists() []api.WatchlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]api.WatchlistItem, len(s.watchlists))
	copy(out, s.watchlists)
	return out
}

// WatchlistNames は現在のミラーのウォッチリスト名を返します。
func (s *SyncStore) WatchlistNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.watchlists))
	for _, w := range s.watchlists {
		names = append(names, w.Name)
	}
	return names
}

// State は現在の状態を返します。
func (s *SyncStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err は直近のエラーを返します。StateError以外ではnilです。
func (s *SyncStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *SyncStore) setLoading() {
	s.mu.Lock()
	s.state = StateLoading
	s.lastErr = nil
	s.mu.Unlock()
}

// adopt はミラーを新しいスナップショットで丸ごと置き換えます。
func (s *SyncStore) adopt(items []api.WatchlistItem) {
	s.mu.Lock()
	s.watchlists = items
	s.state = StateReady
	s.lastErr = nil
	s.mu.Unlock()
}

// setError は直前の状態を保ったままエラーを記録します。
// ミラーが部分的に上書きされることはありません。
func (s *SyncStore) setError(err error) {
	s.mu.Lock()
	s.state = StateError
	s.lastErr = err
	s.mu.Unlock()
}

// recordErr はミューテーション失敗を記録します。ロード済みのミラーは
// そのまま使えるため、状態はReadyのまま変えません。
func (s *SyncStore) recordErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
