// Package alphavantage provides a client for the Alpha Vantage stock data API.
package alphavantage

import (
	"os"
	"time"
)

// DefaultBaseURL is used when ALPHA_VANTAGE_BASE_URL is not set.
const DefaultBaseURL = "https://www.alphavantage.co"

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey  string        // API key for authentication (required)
	BaseURL string        // Base URL for the API
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("ALPHA_VANTAGE_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		APIKey:  os.Getenv("ALPHA_VANTAGE_KEY"),
		BaseURL: base,
		Timeout: 30 * time.Second,
	}
}
