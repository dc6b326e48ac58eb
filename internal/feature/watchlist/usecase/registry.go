package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"stock_app/internal/feature/watchlist/domain/entity"
)

// DefaultWatchlistName はウォッチリストが1つも存在しない状態で銘柄が追加された
// ときに作成されるリスト名です。
const DefaultWatchlistName = "My Favorites"

// WatchlistRepository はウォッチリストの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
// 列挙順はすべて作成順（挿入順）です。
type WatchlistRepository interface {
	// ListAll は全ウォッチリストを作成順で返します。
	ListAll(ctx context.Context) (entity.Collection, error)
	// Get は名前に一致するウォッチリストを返します。
	// 存在しない場合は ErrWatchlistNotFound を返します。
	Get(ctx context.Context, name string) (*entity.Watchlist, error)
	// Create は空のウォッチリストを作成します。
	Create(ctx context.Context, name string) error
	// AddSymbol は銘柄を追加します。既に存在する場合は何もしません。
	AddSymbol(ctx context.Context, name, symbol string) error
	// RemoveSymbol は銘柄を削除します。存在しない銘柄は何もしません。
	RemoveSymbol(ctx context.Context, name, symbol string) error
	// Delete はウォッチリストを銘柄ごと削除します。
	Delete(ctx context.Context, name string) error
}

// WatchlistRegistry はウォッチリスト名→銘柄集合の正本を管理します。
// プロセス内で単一インスタンスとして使い、全変更操作をミューテックスで
// 直列化します。createIfMissing付きのAddSymbolと同名のCreateが同時に走っても
// 二重作成や一方の消失が起きないようにするためです。
type WatchlistRegistry struct {
	mu   sync.Mutex
	repo WatchlistRepository
}

// NewWatchlistRegistry はWatchlistRegistryの新しいインスタンスを生成します。
func NewWatchlistRegistry(repo WatchlistRepository) *WatchlistRegistry {
	return &WatchlistRegistry{repo: repo}
}

// List は全ウォッチリストを作成順で返します。
func (r *WatchlistRegistry) List(ctx context.Context) (entity.Collection, error) {
	return r.repo.ListAll(ctx)
}

// Create は空のウォッチリストを作成します。
// 同名のリストが既にある場合は ErrWatchlistAlreadyExists を返します。
func (r *WatchlistRegistry) Create(ctx context.Context, name string) (*entity.Watchlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.repo.Get(ctx, name); err == nil {
		return nil, ErrWatchlistAlreadyExists
	} else if !errors.Is(err, ErrWatchlistNotFound) {
		return nil, err
	}

	if err := r.repo.Create(ctx, name); err != nil {
		return nil, err
	}
	return &entity.Watchlist{Name: name, Symbols: []string{}}, nil
}

// AddSymbol は銘柄をウォッチリストへ追加し、更新後のリストを返します。
//
// 対象リストの解決順:
//  1. createIfMissing かつ name 指定あり → なければ作成
//  2. name 未指定 → 作成順で先頭のリスト。1つもなければ DefaultWatchlistName を作成
//  3. 解決後も存在しなければ ErrWatchlistNotFound
//
// 銘柄は大文字化され、既に含まれている場合の再追加はエラーにしません。
func (r *WatchlistRegistry) AddSymbol(ctx context.Context, name, symbol string, createIfMissing bool) (*entity.Watchlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	symbol = NormalizeSymbol(symbol)

	target := name
	if createIfMissing && name != "" {
		if err := r.ensureExists(ctx, name); err != nil {
			return nil, err
		}
	}
	if target == "" {
		all, err := r.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		if len(all) > 0 {
			target = all[0].Name
		} else {
			target = DefaultWatchlistName
			if err := r.ensureExists(ctx, target); err != nil {
				return nil, err
			}
		}
	}

	w, err := r.repo.Get(ctx, target)
	if err != nil {
		return nil, err
	}

	if !w.Contains(symbol) {
		if err := r.repo.AddSymbol(ctx, target, symbol); err != nil {
			return nil, err
		}
		w.Symbols = append(w.Symbols, symbol)
	}
	return w, nil
}

// RemoveSymbol は銘柄をウォッチリストから削除し、更新後のリストを返します。
// リスト名が未知の場合は ErrWatchlistNotFound。含まれていない銘柄の削除は
// エラーにしません。
func (r *WatchlistRegistry) RemoveSymbol(ctx context.Context, name, symbol string) (*entity.Watchlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	symbol = NormalizeSymbol(symbol)

	w, err := r.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	if w.Contains(symbol) {
		if err := r.repo.RemoveSymbol(ctx, name, symbol); err != nil {
			return nil, err
		}
		kept := w.Symbols[:0]
		for _, s := range w.Symbols {
			if s != symbol {
				kept = append(kept, s)
			}
		}
		w.Symbols = kept
	}
	return w, nil
}

// Delete はウォッチリストを銘柄ごと削除します。元に戻せません。
func (r *WatchlistRegistry) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.repo.Get(ctx, name); err != nil {
		return err
	}
	return r.repo.Delete(ctx, name)
}

// ensureExists は指定名のウォッチリストがなければ作成します。
func (r *WatchlistRegistry) ensureExists(ctx context.Context, name string) error {
	_, err := r.repo.Get(ctx, name)
	if errors.Is(err, ErrWatchlistNotFound) {
		return r.repo.Create(ctx, name)
	}
	return err
}

// NormalizeSymbol はティッカーシンボルを大文字・前後空白なしに正規化します。
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
