// Package db はGORMによるデータベース接続の初期化を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDB はDB_DRIVERに応じてデータベース接続を開きます。
// 既定はSQLite（SQLITE_PATH、なければ ./stock.db）。DB_DRIVER=mysql の場合は
// 環境変数のDSNでMySQLへ接続し、起動時の依存順序に備えてリトライします。
func OpenDB() *gorm.DB {
	if os.Getenv("DB_DRIVER") == "mysql" {
		return openMySQL()
	}
	return openSQLite()
}

func openSQLite() *gorm.DB {
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "./stock.db"
	}

	db, err := gorm.Open(gsqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("sqlite open failed: %v", err)
	}
	log.Println("USING_SQLITE:", path)
	return db
}

func openMySQL() *gorm.DB {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		user, pass, host, port, name)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gmysql.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	return db
}
