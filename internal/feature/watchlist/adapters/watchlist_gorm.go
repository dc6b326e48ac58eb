// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"stock_app/internal/feature/watchlist/domain/entity"
	"stock_app/internal/feature/watchlist/usecase"
)

// WatchlistModel はウォッチリストのGORMモデルです。
type WatchlistModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
	Symbols   []WatchlistSymbolModel `gorm:"foreignKey:WatchlistID"`
}

// TableName はテーブル名を指定します。
func (WatchlistModel) TableName() string { return "watchlists" }

// WatchlistSymbolModel はウォッチリスト内の1銘柄のGORMモデルです。
// (watchlist_id, symbol) の一意制約で重複登録を防ぎます。
type WatchlistSymbolModel struct {
	ID          uint   `gorm:"primaryKey"`
	WatchlistID uint   `gorm:"not null;uniqueIndex:idx_watchlist_symbol"`
	Symbol      string `gorm:"size:20;not null;uniqueIndex:idx_watchlist_symbol"`
	CreatedAt   time.Time
}

// TableName はテーブル名を指定します。
func (WatchlistSymbolModel) TableName() string { return "watchlist_symbols" }

// watchlistGorm はWatchlistRepositoryインターフェースのGORM実装です。
type watchlistGorm struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistRepository は指定されたDB接続でwatchlistGormリポジトリの
// 新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// AutoMigrate はウォッチリスト関連テーブルを作成・更新します。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&WatchlistModel{}, &WatchlistSymbolModel{})
}

// DefaultCollection は初回起動時に投入されるウォッチリストです。
var DefaultCollection = entity.Collection{
	{Name: "Tech Giants", Symbols: []string{"AAPL", "GOOGL", "MSFT", "AMZN", "META", "NVDA", "TSLA", "NFLX", "ADBE", "CRM", "ORCL", "IBM"}},
	{Name: "Growth Stocks", Symbols: []string{"TSLA", "NVDA", "SQ", "SHOP", "ROKU"}},
	{Name: "Dividend Payers", Symbols: []string{"JNJ", "PG", "KO", "PEP", "MCD", "WMT", "VZ", "T"}},
}

// SeedDefaults はテーブルが空の場合のみDefaultCollectionを投入します。
func SeedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&WatchlistModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, w := range DefaultCollection {
		m := WatchlistModel{Name: w.Name}
		for _, s := range w.Symbols {
			m.Symbols = append(m.Symbols, WatchlistSymbolModel{Symbol: s})
		}
		if err := db.Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListAll は全ウォッチリストを作成順（ID昇順）で返します。
func (r *watchlistGorm) ListAll(ctx context.Context) (entity.Collection, error) {
	var models []WatchlistModel
	if err := r.db.WithContext(ctx).
		Preload("Symbols", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make(entity.Collection, 0, len(models))
	for _, m := range models {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Get は名前に一致するウォッチリストを返します。
func (r *watchlistGorm) Get(ctx context.Context, name string) (*entity.Watchlist, error) {
	var m WatchlistModel
	err := r.db.WithContext(ctx).
		Preload("Symbols", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("name = ?", name).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrWatchlistNotFound
		}
		return nil, err
	}
	w := toEntity(m)
	return &w, nil
}

// Create は空のウォッチリストを作成します。
func (r *watchlistGorm) Create(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Create(&WatchlistModel{Name: name}).Error
}

// AddSymbol は銘柄行を追加します。既にある場合は何もしません。
func (r *watchlistGorm) AddSymbol(ctx context.Context, name, symbol string) error {
	id, err := r.idByName(ctx, name)
	if err != nil {
		return err
	}
	row := WatchlistSymbolModel{WatchlistID: id, Symbol: symbol}
	return r.db.WithContext(ctx).
		Where("watchlist_id = ? AND symbol = ?", id, symbol).
		FirstOrCreate(&row).Error
}

// RemoveSymbol は銘柄行を削除します。存在しない銘柄は何もしません。
func (r *watchlistGorm) RemoveSymbol(ctx context.Context, name, symbol string) error {
	id, err := r.idByName(ctx, name)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("watchlist_id = ? AND symbol = ?", id, symbol).
		Delete(&WatchlistSymbolModel{}).Error
}

// Delete はウォッチリストと所属銘柄をすべて削除します。
// SQLiteでは外部キー制約が既定で無効のため、銘柄行を明示的に削除します。
func (r *watchlistGorm) Delete(ctx context.Context, name string) error {
	id, err := r.idByName(ctx, name)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("watchlist_id = ?", id).Delete(&WatchlistSymbolModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&WatchlistModel{}, id).Error
	})
}

// idByName は名前からウォッチリストIDを引きます。
func (r *watchlistGorm) idByName(ctx context.Context, name string) (uint, error) {
	var m WatchlistModel
	err := r.db.WithContext(ctx).
		Select("id").
		Where("name = ?", name).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, usecase.ErrWatchlistNotFound
		}
		return 0, err
	}
	return m.ID, nil
}

// toEntity はGORMモデルをドメインエンティティに変換します。
func toEntity(m WatchlistModel) entity.Watchlist {
	symbols := make([]string, 0, len(m.Symbols))
	for _, s := range m.Symbols {
		symbols = append(symbols, s.Symbol)
	}
	return entity.Watchlist{Name: m.Name, Symbols: symbols}
}
