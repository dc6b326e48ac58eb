// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_app/internal/api"
	"stock_app/internal/feature/watchlist/domain/entity"
	"stock_app/internal/feature/watchlist/transport/http/dto"
	"stock_app/internal/feature/watchlist/usecase"
)

// Registry はウォッチリスト操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type Registry interface {
	List(ctx context.Context) (entity.Collection, error)
	Create(ctx context.Context, name string) (*entity.Watchlist, error)
	AddSymbol(ctx context.Context, name, symbol string, createIfMissing bool) (*entity.Watchlist, error)
	RemoveSymbol(ctx context.Context, name, symbol string) (*entity.Watchlist, error)
	Delete(ctx context.Context, name string) error
}

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
type WatchlistHandler struct {
	registry Registry
}

// NewWatchlistHandler は指定されたレジストリでWatchlistHandlerの新しい
// インスタンスを生成します。
func NewWatchlistHandler(registry Registry) *WatchlistHandler {
	return &WatchlistHandler{registry: registry}
}

// List は全ウォッチリストを返します。stockCountは保存値ではなく
// その時点の銘柄数から導出します。
//
// GET /watchlist
func (h *WatchlistHandler) List(c *gin.Context) {
	collection, err := h.registry.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Watchlists retrieved successfully", toItems(collection))
}

// AddStock は銘柄をウォッチリストへ追加します。
//
// POST /watchlist/add
func (h *WatchlistHandler) AddStock(c *gin.Context) {
	var req dto.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Stock symbol is required")
		return
	}

	w, err := h.registry.AddSymbol(c.Request.Context(), req.WatchlistName, req.Symbol, req.CreateNew)
	if err != nil {
		h.fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Stock added to watchlist successfully", api.AddStockResult{
		WatchlistName: w.Name,
		Symbol:        usecase.NormalizeSymbol(req.Symbol),
		Stocks:        w.Symbols,
	})
}

// RemoveStock は銘柄をウォッチリストから削除します。
//
// DELETE /watchlist/remove/:symbol
func (h *WatchlistHandler) RemoveStock(c *gin.Context) {
	symbol := c.Param("symbol")

	var req dto.RemoveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Watchlist name is required")
		return
	}

	w, err := h.registry.RemoveSymbol(c.Request.Context(), req.WatchlistName, symbol)
	if err != nil {
		h.fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Stock removed from watchlist successfully", api.RemoveStockResult{
		WatchlistName:   w.Name,
		Symbol:          usecase.NormalizeSymbol(symbol),
		RemainingStocks: w.Symbols,
	})
}

// Create は空のウォッチリストを作成します。
//
// POST /watchlist/create
func (h *WatchlistHandler) Create(c *gin.Context) {
	var req dto.CreateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Watchlist name is required")
		return
	}

	w, err := h.registry.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	api.OK(c, http.StatusCreated, "Watchlist created successfully", api.CreatedWatchlist{
		Name:   w.Name,
		Stocks: w.Symbols,
	})
}

// Delete はウォッチリストを削除します。
//
// DELETE /watchlist/:name
func (h *WatchlistHandler) Delete(c *gin.Context) {
	name := c.Param("name")

	if err := h.registry.Delete(c.Request.Context(), name); err != nil {
		h.fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Watchlist deleted successfully", api.DeletedWatchlist{Name: name})
}

// fail はドメインエラーをHTTPステータスとエラーエンベロープに変換します。
func (h *WatchlistHandler) fail(c *gin.Context, err error) {
	slog.Warn("watchlist request failed", "error", err)
	switch {
	case errors.Is(err, usecase.ErrWatchlistNotFound):
		api.Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrWatchlistAlreadyExists):
		api.Fail(c, http.StatusConflict, err.Error())
	default:
		api.Fail(c, http.StatusInternalServerError, err.Error())
	}
}

// toItems はドメインエンティティをレスポンスDTOに変換します。
func toItems(collection entity.Collection) []api.WatchlistItem {
	out := make([]api.WatchlistItem, 0, len(collection))
	for _, w := range collection {
		out = append(out, api.WatchlistItem{
			Name:       w.Name,
			StockCount: len(w.Symbols),
			Stocks:     w.Symbols,
		})
	}
	return out
}
