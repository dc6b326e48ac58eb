package router

import (
	"github.com/gin-gonic/gin"

	stockhandler "stock_app/internal/feature/stocks/transport/handler"
	watchlisthandler "stock_app/internal/feature/watchlist/transport/handler"
	"stock_app/internal/platform/http/handler"
)

// NewRouter はAPIのルートテーブルを構築します。
// モバイルクライアントは /api 以下を呼び出します。
func NewRouter(stocks *stockhandler.StockHandler, watchlist *watchlisthandler.WatchlistHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/health", handler.Health)

	apiGroup := r.Group("/api")
	{
		// 株価データ
		apiGroup.GET("/stocks/overview/:symbol", stocks.GetOverview)
		apiGroup.GET("/stocks/time-series/:symbol/:range", stocks.GetTimeSeries)
		apiGroup.GET("/stocks/gainers", stocks.GetTopGainers)
		apiGroup.GET("/stocks/losers", stocks.GetTopLosers)
		apiGroup.GET("/stocks/logo/:domain", stocks.GetLogo)

		// ウォッチリスト
		apiGroup.GET("/watchlist", watchlist.List)
		apiGroup.POST("/watchlist/add", watchlist.AddStock)
		apiGroup.DELETE("/watchlist/remove/:symbol", watchlist.RemoveStock)
		apiGroup.POST("/watchlist/create", watchlist.Create)
		apiGroup.DELETE("/watchlist/:name", watchlist.Delete)
	}

	return r
}
