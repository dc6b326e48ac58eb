package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"stock_app/internal/feature/stocks/adapters/alphavantage/dto"
	"stock_app/internal/feature/stocks/domain/entity"
	"stock_app/internal/feature/stocks/usecase"
)

// rangeSpec はアプリのレンジタグをAlpha Vantageのクエリパラメータに対応付けます。
type rangeSpec struct {
	function   string
	interval   string // intradayのみ
	outputSize string
}

// rangeSpecs はレンジ→粒度の固定対応表です。未知のレンジは defaultRangeSpec に
// フォールバックします（エラーにはしません）。
var rangeSpecs = map[string]rangeSpec{
	"1d": {function: "TIME_SERIES_INTRADAY", interval: "5min", outputSize: "compact"},
	"1w": {function: "TIME_SERIES_DAILY", outputSize: "compact"},
	"1m": {function: "TIME_SERIES_DAILY", outputSize: "compact"},
	"3m": {function: "TIME_SERIES_DAILY", outputSize: "compact"},
	"6m": {function: "TIME_SERIES_WEEKLY", outputSize: "compact"},
	"1y": {function: "TIME_SERIES_MONTHLY", outputSize: "full"},
	"all": {function: "TIME_SERIES_MONTHLY", outputSize: "full"},
}

var defaultRangeSpec = rangeSpec{function: "TIME_SERIES_DAILY", outputSize: "compact"}

// AlphaVantageMarket はAlpha Vantage APIから株価データを取得するMarketRepository実装です。
// ベンダー固有のフィールド名と単位はすべてこのパッケージ内に閉じ込めます。
type AlphaVantageMarket struct {
	cfg    Config
	client *http.Client
}

// AlphaVantageMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*AlphaVantageMarket)(nil)

// NewAlphaVantageMarket は指定された設定とHTTPクライアントでAlphaVantageMarketの
// 新しいインスタンスを生成します。
func NewAlphaVantageMarket(cfg Config, client *http.Client) *AlphaVantageMarket {
	return &AlphaVantageMarket{cfg: cfg, client: client}
}

// GetOverview は企業概要を取得し、canonicalなStockOverviewとして返します。
func (a *AlphaVantageMarket) GetOverview(ctx context.Context, symbol string) (*entity.StockOverview, error) {
	q := url.Values{}
	q.Set("function", "OVERVIEW")
	q.Set("symbol", symbol)
	q.Set("apikey", a.cfg.APIKey)

	raw, err := a.query(ctx, q)
	if err != nil {
		return nil, err
	}

	var body dto.OverviewResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: decode overview: %v", usecase.ErrUpstreamSchema, err)
	}
	// レート制限マーカーは「空だが正常」とは区別して扱う
	if body.Note != "" || body.Information != "" {
		return nil, usecase.ErrRateLimited
	}
	if body.Symbol == "" {
		return nil, fmt.Errorf("%w: %s", usecase.ErrSymbolNotFound, symbol)
	}

	return &entity.StockOverview{
		Symbol:        strings.ToUpper(body.Symbol),
		Name:          body.Name,
		Description:   body.Description,
		Exchange:      body.Exchange,
		Sector:        body.Sector,
		Industry:      body.Industry,
		MarketCap:     body.MarketCap,
		PERatio:       body.PERatio,
		DividendYield: body.DividendYield,
		Week52High:    body.Week52High,
		Week52Low:     body.Week52Low,
		Beta:          body.Beta,
		EPS:           body.EPS,
		CurrentPrice:  body.FiftyDayMovingAvg,
	}, nil
}

// GetTimeSeries は指定レンジの時系列データを取得し、時刻昇順で返します。
// レスポンス中の系列フィールドは名前に "Time Series" を含むキーで特定します。
func (a *AlphaVantageMarket) GetTimeSeries(ctx context.Context, symbol, rng string) (*entity.TimeSeriesResult, error) {
	spec, ok := rangeSpecs[rng]
	if !ok {
		spec = defaultRangeSpec
	}

	q := url.Values{}
	q.Set("function", spec.function)
	q.Set("symbol", symbol)
	q.Set("outputsize", spec.outputSize)
	q.Set("apikey", a.cfg.APIKey)
	if spec.interval != "" {
		q.Set("interval", spec.interval)
	}

	raw, err := a.query(ctx, q)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: decode time series: %v", usecase.ErrUpstreamSchema, err)
	}
	if _, limited := fields["Note"]; limited {
		return nil, usecase.ErrRateLimited
	}
	if _, limited := fields["Information"]; limited {
		return nil, usecase.ErrRateLimited
	}

	seriesRaw, ok := findSeriesField(fields)
	if !ok {
		return nil, fmt.Errorf("%w: no time series field in response", usecase.ErrUpstreamSchema)
	}

	var series map[string]dto.SeriesValues
	if err := json.Unmarshal(seriesRaw, &series); err != nil {
		return nil, fmt.Errorf("%w: decode series values: %v", usecase.ErrUpstreamSchema, err)
	}

	points := make([]entity.TimeSeriesPoint, 0, len(series))
	for datetime, v := range series {
		p, err := adaptPoint(datetime, v)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	// ベンダーは新しい順で返すが、JSONオブジェクトのキー順は保証されないため
	// 常に時刻昇順へソートする
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	return &entity.TimeSeriesResult{Symbol: symbol, Range: rng, Points: points}, nil
}

// query はAlpha Vantageの /query エンドポイントへGETリクエストを送ります。
func (a *AlphaVantageMarket) query(ctx context.Context, q url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s/query?%s", a.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrUpstreamUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: alphavantage http %d", usecase.ErrUpstreamUnavailable, res.StatusCode)
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrUpstreamUnavailable, err)
	}
	return buf, nil
}

// findSeriesField は名前に "Time Series" を含む唯一の系列フィールドを探します。
func findSeriesField(fields map[string]json.RawMessage) (json.RawMessage, bool) {
	for k, v := range fields {
		if strings.Contains(k, "Time Series") {
			return v, true
		}
	}
	return nil, false
}

// adaptPoint は1サンプル分の文字列値をドメインの型に変換します。
func adaptPoint(datetime string, v dto.SeriesValues) (entity.TimeSeriesPoint, error) {
	tm, err := time.Parse("2006-01-02 15:04:05", datetime)
	if err != nil {
		tm, err = time.Parse("2006-01-02", datetime)
		if err != nil {
			return entity.TimeSeriesPoint{}, fmt.Errorf("%w: parse time %q", usecase.ErrUpstreamSchema, datetime)
		}
	}
	o, err := strconv.ParseFloat(v.Open, 64)
	if err != nil {
		return entity.TimeSeriesPoint{}, fmt.Errorf("%w: parse open %q", usecase.ErrUpstreamSchema, v.Open)
	}
	h, err := strconv.ParseFloat(v.High, 64)
	if err != nil {
		return entity.TimeSeriesPoint{}, fmt.Errorf("%w: parse high %q", usecase.ErrUpstreamSchema, v.High)
	}
	l, err := strconv.ParseFloat(v.Low, 64)
	if err != nil {
		return entity.TimeSeriesPoint{}, fmt.Errorf("%w: parse low %q", usecase.ErrUpstreamSchema, v.Low)
	}
	c, err := strconv.ParseFloat(v.Close, 64)
	if err != nil {
		return entity.TimeSeriesPoint{}, fmt.Errorf("%w: parse close %q", usecase.ErrUpstreamSchema, v.Close)
	}
	vol, err := strconv.ParseInt(v.Volume, 10, 64)
	if err != nil {
		return entity.TimeSeriesPoint{}, fmt.Errorf("%w: parse volume %q", usecase.ErrUpstreamSchema, v.Volume)
	}
	return entity.TimeSeriesPoint{Time: tm, Price: c, Open: o, High: h, Low: l, Volume: vol}, nil
}
