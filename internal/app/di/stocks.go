// Package di provides dependency injection factories for creating application components.
package di

import (
	"stock_app/internal/feature/stocks/adapters/alphavantage"
	"stock_app/internal/feature/stocks/adapters/yahoofinance"
	infrahttp "stock_app/internal/platform/http"
)

// NewMarket creates a fully configured AlphaVantageMarket with HTTP client.
func NewMarket() *alphavantage.AlphaVantageMarket {
	cfg := alphavantage.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return alphavantage.NewAlphaVantageMarket(cfg, httpClient)
}

// NewScreener creates a fully configured YahooScreener with HTTP client.
func NewScreener() *yahoofinance.YahooScreener {
	cfg := yahoofinance.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return yahoofinance.NewYahooScreener(cfg, httpClient)
}
