package api

// WatchlistItem is the wire representation of a single watchlist.
// StockCount is derived from the live symbol set, never stored.
type WatchlistItem struct {
	Name       string   `json:"name"`
	StockCount int      `json:"stockCount"`
	Stocks     []string `json:"stocks"`
}

// AddStockResult is returned by POST /watchlist/add.
type AddStockResult struct {
	WatchlistName string   `json:"watchlistName"`
	Symbol        string   `json:"symbol"`
	Stocks        []string `json:"stocks"`
}

// RemoveStockResult is returned by DELETE /watchlist/remove/:symbol.
type RemoveStockResult struct {
	WatchlistName   string   `json:"watchlistName"`
	Symbol          string   `json:"symbol"`
	RemainingStocks []string `json:"remainingStocks"`
}

// CreatedWatchlist is returned by POST /watchlist/create.
type CreatedWatchlist struct {
	Name   string   `json:"name"`
	Stocks []string `json:"stocks"`
}

// DeletedWatchlist is returned by DELETE /watchlist/:name.
type DeletedWatchlist struct {
	Name string `json:"name"`
}
