// watch はウォッチリスト同期ストアを使う小さなCLIです。
// モバイルアプリのシェルに相当し、ローカルスナップショットを
// サーバのレジストリと同期しながら操作します。
//
// 使い方:
//
//	watch [-server URL] [-snapshot PATH] list
//	watch [-server URL] [-snapshot PATH] add SYMBOL [WATCHLIST] [-new]
//	watch [-server URL] [-snapshot PATH] remove WATCHLIST SYMBOL
//	watch [-server URL] [-snapshot PATH] create NAME
//	watch [-server URL] [-snapshot PATH] delete NAME
//	watch [-server URL] [-snapshot PATH] refresh
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"stock_app/internal/client/watchlist"
	infrahttp "stock_app/internal/platform/http"
)

func main() {
	server := flag.String("server", "http://localhost:3000/api", "base URL of the stock API")
	snapshot := flag.String("snapshot", defaultSnapshotPath(), "path of the local watchlist snapshot")
	createNew := flag.Bool("new", false, "create the watchlist when adding to a missing one")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	client := watchlist.NewAPIClient(*server, infrahttp.NewHTTPClient(30*time.Second))
	store := watchlist.NewSyncStore(client, watchlist.NewFileSnapshot(*snapshot))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := store.Load(ctx); err != nil {
		log.Fatal("failed to load watchlists: ", err)
	}

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "list":
		printAll(store)
	case "add":
		if flag.NArg() < 2 {
			log.Fatal("usage: watch add SYMBOL [WATCHLIST] [-new]")
		}
		err = store.AddStock(ctx, flag.Arg(2), flag.Arg(1), *createNew)
	case "remove":
		if flag.NArg() < 3 {
			log.Fatal("usage: watch remove WATCHLIST SYMBOL")
		}
		err = store.RemoveStock(ctx, flag.Arg(1), flag.Arg(2))
	case "create":
		if flag.NArg() < 2 {
			log.Fatal("usage: watch create NAME")
		}
		err = store.CreateWatchlist(ctx, flag.Arg(1))
	case "delete":
		if flag.NArg() < 2 {
			log.Fatal("usage: watch delete NAME")
		}
		err = store.DeleteWatchlist(ctx, flag.Arg(1))
	case "refresh":
		err = store.Refresh(ctx)
	default:
		log.Fatalf("unknown command %q", cmd)
	}
	if err != nil {
		log.Fatal(err)
	}

	if flag.Arg(0) != "list" {
		printAll(store)
	}
}

// printAll はミラーの現在の内容を表示します。
func printAll(store *watchlist.SyncStore) {
	for _, w := range store.Watchlists() {
		fmt.Printf("%s (%d)\n", w.Name, w.StockCount)
		for _, s := range w.Stocks {
			fmt.Printf("  %s\n", s)
		}
	}
}

// defaultSnapshotPath はスナップショットの既定の保存先を返します。
func defaultSnapshotPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stock_app_watchlists.json"
	}
	return home + "/.stock_app_watchlists.json"
}
