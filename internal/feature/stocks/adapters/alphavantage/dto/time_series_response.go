package dto

// SeriesValues holds one OHLCV sample as returned inside a time-series map.
// The numbered field names are Alpha Vantage's own.
type SeriesValues struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}
