// Package yahoofinance provides a client for the Yahoo Finance predefined
// screener API (day gainers / day losers).
package yahoofinance

import (
	"os"
	"time"
)

// DefaultBaseURL is used when YAHOO_FINANCE_BASE_URL is not set.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Config holds configuration for the Yahoo Finance screener client.
type Config struct {
	BaseURL string        // Base URL for the API
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Yahoo Finance configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("YAHOO_FINANCE_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: 30 * time.Second,
	}
}
