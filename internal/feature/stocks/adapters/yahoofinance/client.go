package yahoofinance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"stock_app/internal/feature/stocks/adapters/yahoofinance/dto"
	"stock_app/internal/feature/stocks/domain/entity"
	"stock_app/internal/feature/stocks/usecase"
)

const (
	screenerGainers = "day_gainers"
	screenerLosers  = "day_losers"

	// screenerCount は上流に要求する件数です。上流がソート済みの先頭N件を
	// 返すため、こちらで並べ替えは行いません。
	screenerCount = 10

	// ブラウザ由来のUser-Agentがないとスクリーナーエンドポイントは403を返します。
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// YahooScreener はYahoo Financeの定義済みスクリーナーから値上がり/値下がり
// 上位リストを取得するScreenerRepository実装です。
type YahooScreener struct {
	cfg    Config
	client *http.Client
}

// YahooScreenerがScreenerRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ScreenerRepository = (*YahooScreener)(nil)

// NewYahooScreener は指定された設定とHTTPクライアントでYahooScreenerの
// 新しいインスタンスを生成します。
func NewYahooScreener(cfg Config, client *http.Client) *YahooScreener {
	return &YahooScreener{cfg: cfg, client: client}
}

// TopGainers は当日の値上がり上位リストを返します。
func (y *YahooScreener) TopGainers(ctx context.Context) ([]entity.ScreenerEntry, error) {
	return y.fetch(ctx, screenerGainers)
}

// TopLosers は当日の値下がり上位リストを返します。
func (y *YahooScreener) TopLosers(ctx context.Context) ([]entity.ScreenerEntry, error) {
	return y.fetch(ctx, screenerLosers)
}

func (y *YahooScreener) fetch(ctx context.Context, screenerID string) ([]entity.ScreenerEntry, error) {
	q := url.Values{}
	q.Set("formatted", "true")
	q.Set("scrIds", screenerID)
	q.Set("count", fmt.Sprint(screenerCount))
	q.Set("region", "US")
	q.Set("lang", "en-US")

	u := fmt.Sprintf("%s/v1/finance/screener/predefined/saved?%s", y.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrUpstreamUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusTooManyRequests {
		return nil, usecase.ErrRateLimited
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: yahoo finance http %d", usecase.ErrUpstreamUnavailable, res.StatusCode)
	}

	var body dto.ScreenerResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode screener: %v", usecase.ErrUpstreamSchema, err)
	}
	// finance エンベロープ自体が欠けていたらペイロードとして不正
	if body.Finance == nil {
		return nil, fmt.Errorf("%w: missing finance envelope", usecase.ErrUpstreamSchema)
	}

	var quotes []dto.Quote
	if len(body.Finance.Result) > 0 {
		quotes = body.Finance.Result[0].Quotes
	}

	entries := make([]entity.ScreenerEntry, 0, len(quotes))
	for _, qt := range quotes {
		entries = append(entries, adaptQuote(qt))
	}
	return entries, nil
}

// adaptQuote は1件のスクリーナーヒットをcanonicalな形式に変換します。
// 数値フィールドはそれぞれ独立に0へ、名前はシンボル自身へフォールバックします。
func adaptQuote(q dto.Quote) entity.ScreenerEntry {
	name := q.ShortName
	if name == "" {
		name = q.LongName
	}
	if name == "" {
		name = q.Symbol
	}
	return entity.ScreenerEntry{
		Symbol:        q.Symbol,
		Name:          name,
		Price:         q.RegularMarketPrice.Raw,
		Change:        q.RegularMarketChange.Raw,
		ChangePercent: q.RegularMarketChangePct.Raw,
		Volume:        int64(q.RegularMarketVolume.Raw),
	}
}
