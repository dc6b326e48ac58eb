// Package dto defines data transfer objects for Alpha Vantage API responses.
package dto

// OverviewResponse represents the JSON response from the OVERVIEW function.
// Alpha Vantage reports every numeric fundamental as a decimal string.
// Note and Information carry the vendor's rate-limit markers; a payload
// containing either must never be treated as an empty-but-valid result.
type OverviewResponse struct {
	Symbol            string `json:"Symbol"`
	Name              string `json:"Name"`
	Description       string `json:"Description"`
	Exchange          string `json:"Exchange"`
	Sector            string `json:"Sector"`
	Industry          string `json:"Industry"`
	MarketCap         string `json:"MarketCapitalization"`
	PERatio           string `json:"PERatio"`
	DividendYield     string `json:"DividendYield"`
	Week52High        string `json:"52WeekHigh"`
	Week52Low         string `json:"52WeekLow"`
	Beta              string `json:"Beta"`
	EPS               string `json:"EPS"`
	FiftyDayMovingAvg string `json:"50DayMovingAverage"`
	Note              string `json:"Note,omitempty"`
	Information       string `json:"Information,omitempty"`
}
