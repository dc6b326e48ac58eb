// Package entity defines the canonical stock records served by the proxy.
// Upstream vendor field names never leak past the adapters; everything
// downstream of them works with these types only.
package entity

import "time"

// StockOverview is an immutable snapshot of a company profile.
// Symbol is always upper-cased before storage or lookup. The vendor
// reports the numeric fundamentals as decimal strings (sometimes "None"),
// and the proxy passes them through untouched; the client formats them.
type StockOverview struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Exchange      string `json:"exchange"`
	Sector        string `json:"sector"`
	Industry      string `json:"industry"`
	MarketCap     string `json:"marketCap"`
	PERatio       string `json:"peRatio"`
	DividendYield string `json:"dividendYield"`
	Week52High    string `json:"week52High"`
	Week52Low     string `json:"week52Low"`
	Beta          string `json:"beta"`
	EPS           string `json:"eps"`
	CurrentPrice  string `json:"currentPrice"`
}

// TimeSeriesPoint is one OHLCV sample. Price carries the close.
type TimeSeriesPoint struct {
	Time   time.Time `json:"time"`
	Price  float64   `json:"price"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Volume int64     `json:"volume"`
}

// TimeSeriesResult holds the points for one symbol and range tag,
// strictly ascending by time regardless of the upstream's native order.
type TimeSeriesResult struct {
	Symbol string            `json:"symbol"`
	Range  string            `json:"range"`
	Points []TimeSeriesPoint `json:"data"`
}

// ScreenerEntry is a flat quote snapshot from the gainers/losers screener.
// It lives only as long as the cache TTL.
type ScreenerEntry struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
}
