// Package dto defines request bodies for the watchlist HTTP API.
package dto

// AddStockRequest is the body of POST /watchlist/add.
// WatchlistName may be empty; the registry then falls back to the first
// existing watchlist. CreateNew asks for the named list to be created
// when it does not exist yet.
type AddStockRequest struct {
	WatchlistName string `json:"watchlistName"`
	Symbol        string `json:"symbol" binding:"required"`
	CreateNew     bool   `json:"createNew"`
}

// RemoveStockRequest is the body of DELETE /watchlist/remove/:symbol.
type RemoveStockRequest struct {
	WatchlistName string `json:"watchlistName" binding:"required"`
}

// CreateWatchlistRequest is the body of POST /watchlist/create.
type CreateWatchlistRequest struct {
	Name string `json:"name" binding:"required"`
}
