// Package usecase は株価データ取得のビジネスロジックを実装します。
// キャッシュ確認 → 上流API取得 → 正規化 → キャッシュ保存の一連の流れを
// リソース種別ごとに一本化します。
package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"stock_app/internal/feature/stocks/domain/entity"
)

// DefaultCacheTTL はキャッシュエントリのプロセス共通のデフォルトTTLです。
const DefaultCacheTTL = 600 * time.Second

// MarketRepository は銘柄単位の株価データを提供する上流プロバイダを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	// GetOverview は銘柄の企業概要スナップショットを取得します。
	GetOverview(ctx context.Context, symbol string) (*entity.StockOverview, error)
	// GetTimeSeries は指定レンジの時系列データを時刻昇順で取得します。
	GetTimeSeries(ctx context.Context, symbol, rng string) (*entity.TimeSeriesResult, error)
}

// ScreenerRepository は値上がり/値下がりスクリーナーの上流プロバイダを抽象化します。
type ScreenerRepository interface {
	TopGainers(ctx context.Context) ([]entity.ScreenerEntry, error)
	TopLosers(ctx context.Context) ([]entity.ScreenerEntry, error)
}

// ResponseCache は同一リソースへの連続リクエストをまとめるTTL付きストアです。
// キー構築は呼び出し側の責務で、リソース種別ごとに名前空間を分けます。
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)
}

// stocksUsecase は株価データ取得のユースケースを実装します。
type stocksUsecase struct {
	market   MarketRepository
	screener ScreenerRepository
	cache    ResponseCache
	ttl      time.Duration
}

// NewStocksUsecase はstocksUsecaseの新しいインスタンスを生成します。
// ttl が 0 以下の場合は DefaultCacheTTL を使用します。
func NewStocksUsecase(market MarketRepository, screener ScreenerRepository, cache ResponseCache, ttl time.Duration) *stocksUsecase {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &stocksUsecase{market: market, screener: screener, cache: cache, ttl: ttl}
}

// GetOverview は企業概要を返します。TTL内の再リクエストは上流を呼びません。
func (u *stocksUsecase) GetOverview(ctx context.Context, symbol string) (*entity.StockOverview, error) {
	symbol = NormalizeSymbol(symbol)
	key := "overview_" + symbol

	if b, ok := u.cache.Get(ctx, key); ok {
		var out entity.StockOverview
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// 壊れたエントリは無視して上流から取り直す
	}

	out, err := u.market.GetOverview(ctx, symbol)
	if err != nil {
		return nil, err
	}

	u.store(ctx, key, out)
	return out, nil
}

// GetTimeSeries は指定レンジの時系列データを返します。キーは(symbol, range)ごとです。
func (u *stocksUsecase) GetTimeSeries(ctx context.Context, symbol, rng string) (*entity.TimeSeriesResult, error) {
	symbol = NormalizeSymbol(symbol)
	key := "timeseries_" + symbol + "_" + rng

	if b, ok := u.cache.Get(ctx, key); ok {
		var out entity.TimeSeriesResult
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
	}

	out, err := u.market.GetTimeSeries(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}

	u.store(ctx, key, out)
	return out, nil
}

// GetTopGainers は値上がり上位リストを返します。
// 上流がソート済みの固定長リストを返すため、並べ替えは行いません。
func (u *stocksUsecase) GetTopGainers(ctx context.Context) ([]entity.ScreenerEntry, error) {
	return u.getScreener(ctx, "top_gainers", u.screener.TopGainers)
}

// GetTopLosers は値下がり上位リストを返します。
func (u *stocksUsecase) GetTopLosers(ctx context.Context) ([]entity.ScreenerEntry, error) {
	return u.getScreener(ctx, "top_losers", u.screener.TopLosers)
}

func (u *stocksUsecase) getScreener(ctx context.Context, key string, fetch func(context.Context) ([]entity.ScreenerEntry, error)) ([]entity.ScreenerEntry, error) {
	if b, ok := u.cache.Get(ctx, key); ok {
		var out []entity.ScreenerEntry
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
	}

	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	u.store(ctx, key, out)
	return out, nil
}

// store はキャッシュへの保存をベストエフォートで行います。
// 同一キーへの競合書き込みは常にエントリ全体の置き換えで、後勝ちで問題ありません。
func (u *stocksUsecase) store(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		u.cache.Set(ctx, key, b, u.ttl)
	}
}

// NormalizeSymbol はティッカーシンボルを正規化します。
// シンボルの扱いは全経路で大文字・前後空白なしに統一されます。
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
