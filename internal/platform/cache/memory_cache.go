package cache

import (
	"context"
	"sync"
	"time"
)

// memoryEntry は1キー分のキャッシュエントリです。
type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache はプロセス内マップによるResponseCache実装です。
// Redisが構成されていない環境でのフォールバックとして使います。
//
// 期限切れの掃除は読み取り時に行います（バックグラウンドスイープなし）。
// キー数はリクエストされた銘柄×レンジに有界なので、これで十分です。
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache はMemoryCacheの新しいインスタンスを生成します。
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get はキーに対応するペイロードを返します。
// 期限切れのエントリは不在として扱い、その場で削除します。
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// 再確認: 競合する書き込みが新しいエントリを置いているかもしれない
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.payload, true
}

// Set はペイロードをTTL付きで保存します。
// 既存エントリは常に丸ごと置き換えます（部分マージはしません）。
func (c *MemoryCache) Set(_ context.Context, key string, payload []byte, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{payload: payload, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}
