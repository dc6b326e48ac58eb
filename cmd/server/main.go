package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/joho/godotenv"

	"stock_app/internal/app/di"
	"stock_app/internal/app/router"
	stockhandler "stock_app/internal/feature/stocks/transport/handler"
	stocksusecase "stock_app/internal/feature/stocks/usecase"
	watchlistadapters "stock_app/internal/feature/watchlist/adapters"
	watchlisthandler "stock_app/internal/feature/watchlist/transport/handler"
	watchlistusecase "stock_app/internal/feature/watchlist/usecase"
	"stock_app/internal/platform/cache"
	platformdb "stock_app/internal/platform/db"
	platformredis "stock_app/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// 上流APIの認証情報は必須。初回リクエストではなく起動時に落とす
	if os.Getenv("ALPHA_VANTAGE_KEY") == "" {
		log.Fatal("ALPHA_VANTAGE_KEY is not set")
	}

	// db
	db := platformdb.OpenDB()
	if err := watchlistadapters.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	if err := watchlistadapters.SeedDefaults(db); err != nil {
		log.Fatalf("failed to seed watchlists: %v", err)
	}

	// キャッシュ: Redisがあれば使い、なければプロセス内TTLマップ
	var responseCache stocksusecase.ResponseCache
	if rdb, err := platformredis.NewRedisClient(); err != nil || rdb == nil {
		if err != nil {
			log.Println("[WARN] Redis unavailable. Falling back to in-memory cache.")
		}
		responseCache = cache.NewMemoryCache()
	} else {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
		responseCache = cache.NewRedisCache(rdb, "stocks")
	}

	// Repository
	market := di.NewMarket()
	screener := di.NewScreener()
	watchlistRepo := watchlistadapters.NewWatchlistRepository(db)

	// Usecase
	stocksUC := stocksusecase.NewStocksUsecase(market, screener, responseCache, stocksusecase.DefaultCacheTTL)
	registry := watchlistusecase.NewWatchlistRegistry(watchlistRepo)

	// Handler
	stocksH := stockhandler.NewStockHandler(stocksUC, os.Getenv("CLEARBIT_LOGO_URL"))
	watchlistH := watchlisthandler.NewWatchlistHandler(registry)

	// ルータ生成
	r := router.NewRouter(stocksH, watchlistH)

	// CORS追加（モバイルアプリのWebView/開発ビルド向け）
	r.Use(cors.Default())

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
