// Package handler はstocksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_app/internal/api"
	"stock_app/internal/feature/stocks/domain/entity"
	"stock_app/internal/feature/stocks/usecase"
)

// DefaultLogoBaseURL はロゴリダイレクト先サービスのデフォルトURLです。
const DefaultLogoBaseURL = "https://logo.clearbit.com"

// StocksUsecase は株価データ取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StocksUsecase interface {
	GetOverview(ctx context.Context, symbol string) (*entity.StockOverview, error)
	GetTimeSeries(ctx context.Context, symbol, rng string) (*entity.TimeSeriesResult, error)
	GetTopGainers(ctx context.Context) ([]entity.ScreenerEntry, error)
	GetTopLosers(ctx context.Context) ([]entity.ScreenerEntry, error)
}

// StockHandler は株価データのHTTPリクエストを処理します。
type StockHandler struct {
	uc          StocksUsecase
	logoBaseURL string
}

// NewStockHandler は指定されたusecaseでStockHandlerの新しいインスタンスを生成します。
// logoBaseURLが空の場合はDefaultLogoBaseURLを使用します。
func NewStockHandler(uc StocksUsecase, logoBaseURL string) *StockHandler {
	if logoBaseURL == "" {
		logoBaseURL = DefaultLogoBaseURL
	}
	return &StockHandler{uc: uc, logoBaseURL: logoBaseURL}
}

// GetOverview は企業概要を返します。
//
// GET /stocks/overview/:symbol
func (h *StockHandler) GetOverview(c *gin.Context) {
	symbol := c.Param("symbol")

	overview, err := h.uc.GetOverview(c.Request.Context(), symbol)
	if err != nil {
		h.fail(c, err, "symbol", symbol)
		return
	}
	api.OK(c, http.StatusOK, "Stock overview retrieved successfully", overview)
}

// GetTimeSeries は指定レンジの時系列データを返します。
// 未知のレンジはエラーにせず、上流アダプタのデフォルト粒度に落ちます。
//
// GET /stocks/time-series/:symbol/:range
func (h *StockHandler) GetTimeSeries(c *gin.Context) {
	symbol := c.Param("symbol")
	rng := c.Param("range")

	result, err := h.uc.GetTimeSeries(c.Request.Context(), symbol, rng)
	if err != nil {
		h.fail(c, err, "symbol", symbol, "range", rng)
		return
	}
	api.OK(c, http.StatusOK, "Time series data retrieved successfully", result)
}

// GetTopGainers は値上がり上位リストを返します。
//
// GET /stocks/gainers
func (h *StockHandler) GetTopGainers(c *gin.Context) {
	entries, err := h.uc.GetTopGainers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Top gainers retrieved successfully", entries)
}

// GetTopLosers は値下がり上位リストを返します。
//
// GET /stocks/losers
func (h *StockHandler) GetTopLosers(c *gin.Context) {
	entries, err := h.uc.GetTopLosers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "Top losers retrieved successfully", entries)
}

// GetLogo は外部ロゴサービスへのリダイレクトを返します。コアの対象外の
// 単純なパススルーです。
//
// GET /stocks/logo/:domain
func (h *StockHandler) GetLogo(c *gin.Context) {
	domain := c.Param("domain")
	c.Redirect(http.StatusFound, fmt.Sprintf("%s/%s", h.logoBaseURL, domain))
}

// fail はドメインエラーをHTTPステータスとエラーエンベロープに変換します。
func (h *StockHandler) fail(c *gin.Context, err error, logArgs ...any) {
	slog.Warn("stock data request failed", append([]any{"error", err}, logArgs...)...)
	api.Fail(c, statusFor(err), err.Error())
}

// statusFor はドメインエラーをHTTPステータスコードに対応付けます。
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSymbolNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, usecase.ErrUpstreamUnavailable),
		errors.Is(err, usecase.ErrUpstreamSchema):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
