package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

// TestMemoryCache_GetSet は基本の保存と取得を検証します。
func TestMemoryCache_GetSet(t *testing.T) {
	t.Parallel()

	c := NewMemoryCache()
	ctx := context.Background()

	if _, ok := c.Get(ctx, "overview_AAPL"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(ctx, "overview_AAPL", []byte("v1"), time.Minute)

	got, ok := c.Get(ctx, "overview_AAPL")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got) != "v1" {
		t.Errorf("expected v1, got %s", got)
	}
}

// TestMemoryCache_Expiry はTTL経過後のエントリが不在として扱われ、
// 次のSetで丸ごと置き換えられることを検証します。
func TestMemoryCache_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	ctx := context.Background()
	c.Set(ctx, "top_gainers", []byte("stale"), 600*time.Second)

	// TTL内はヒット
	now = now.Add(599 * time.Second)
	if _, ok := c.Get(ctx, "top_gainers"); !ok {
		t.Fatal("expected hit within TTL")
	}

	// TTL超過で不在扱い
	now = now.Add(2 * time.Second)
	if _, ok := c.Get(ctx, "top_gainers"); ok {
		t.Fatal("expected miss after TTL expiry")
	}

	// 置き換えは常にエントリ全体
	c.Set(ctx, "top_gainers", []byte("fresh"), 600*time.Second)
	got, ok := c.Get(ctx, "top_gainers")
	if !ok {
		t.Fatal("expected hit after refresh")
	}
	if string(got) != "fresh" {
		t.Errorf("expected fresh, got %s", got)
	}
}

// TestMemoryCache_Overwrite は同一キーへの書き込みが後勝ちで置き換わる
// ことを検証します。
func TestMemoryCache_Overwrite(t *testing.T) {
	t.Parallel()

	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("first"), time.Minute)
	c.Set(ctx, "k", []byte("second"), time.Minute)

	got, _ := c.Get(ctx, "k")
	if string(got) != "second" {
		t.Errorf("expected last writer to win, got %s", got)
	}
}

// TestMemoryCache_ConcurrentAccess は並行アクセスでレースが起きないことを
// 検証します（-race付きで意味を持ちます）。
func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(ctx, "shared", []byte("v"), time.Minute)
				c.Get(ctx, "shared")
			}
		}()
	}
	wg.Wait()
}
