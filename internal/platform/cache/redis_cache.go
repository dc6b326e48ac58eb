// Package cache provides the TTL-bounded response cache implementations.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache はRedisを使ったResponseCache実装です。
// 書き込みはベストエフォートで、Redis障害時もリクエストは失敗させません。
type RedisCache struct {
	rdb       *redis.Client
	namespace string
}

// NewRedisCache は指定されたクライアントと名前空間でRedisCacheの新しい
// インスタンスを生成します。namespaceが空の場合は "stocks" を使用します。
func NewRedisCache(rdb *redis.Client, namespace string) *RedisCache {
	if namespace == "" {
		namespace = "stocks"
	}
	return &RedisCache{rdb: rdb, namespace: namespace}
}

// Get はキーに対応するペイロードを返します。
// ヒットしなかった場合、または読み取りに失敗した場合は ok=false を返します。
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.rdb.Get(ctx, c.prefixed(key)).Bytes()
	if err != nil || len(b) == 0 {
		return nil, false
	}
	return b, true
}

// Set はペイロードをTTL付きで保存します。失敗しても呼び出し元には伝えません。
// 同一キーへの書き込みは常にエントリ全体の置き換えです。
func (c *RedisCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	_ = c.rdb.Set(ctx, c.prefixed(key), payload, ttl).Err()
}

// prefixed は名前空間付きのRedisキーを生成します。
func (c *RedisCache) prefixed(key string) string {
	return c.namespace + ":" + safe(key)
}

// safe はRedisキーとして問題になる文字をエスケープします。
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
