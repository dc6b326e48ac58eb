// Package watchlist implements the client-side mirror of the server's
// watchlist registry: an HTTP client for the watchlist API, a persisted
// snapshot, and a sync store that keeps the two convergent.
package watchlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"stock_app/internal/api"
)

// APIClient はウォッチリストAPIのHTTPクライアントです。
// レスポンスエンベロープの success=false はサーバのメッセージ付きエラーとして
// 返します。ミューテーションは成功応答を受け取って初めて成立とみなします。
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient は指定されたベースURL（例: http://localhost:3000/api）と
// HTTPクライアントでAPIClientの新しいインスタンスを生成します。
func NewAPIClient(baseURL string, client *http.Client) *APIClient {
	return &APIClient{baseURL: baseURL, client: client}
}

// FetchWatchlists は全ウォッチリストを取得します。
func (c *APIClient) FetchWatchlists(ctx context.Context) ([]api.WatchlistItem, error) {
	var items []api.WatchlistItem
	if err := c.do(ctx, http.MethodGet, "/watchlist", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToWatchlist は銘柄追加のミューテーションを送ります。
func (c *APIClient) AddToWatchlist(ctx context.Context, watchlistName, symbol string, createNew bool) error {
	body := map[string]any{
		"watchlistName": watchlistName,
		"symbol":        symbol,
		"createNew":     createNew,
	}
	return c.do(ctx, http.MethodPost, "/watchlist/add", body, nil)
}

// RemoveFromWatchlist は銘柄削除のミューテーションを送ります。
func (c *APIClient) RemoveFromWatchlist(ctx context.Context, watchlistName, symbol string) error {
	body := map[string]any{"watchlistName": watchlistName}
	return c.do(ctx, http.MethodDelete, "/watchlist/remove/"+url.PathEscape(symbol), body, nil)
}

// CreateWatchlist はウォッチリスト作成のミューテーションを送ります。
func (c *APIClient) CreateWatchlist(ctx context.Context, name string) error {
	body := map[string]any{"name": name}
	return c.do(ctx, http.MethodPost, "/watchlist/create", body, nil)
}

// DeleteWatchlist はウォッチリスト削除のミューテーションを送ります。
func (c *APIClient) DeleteWatchlist(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/watchlist/"+url.PathEscape(name), nil, nil)
}

// do はリクエストを実行し、成功エンベロープのdataをoutへデコードします。
func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("watchlist api: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("watchlist api: decode response: %w", err)
	}
	if !envelope.Success {
		if envelope.Message == "" {
			return fmt.Errorf("watchlist api: http %d", res.StatusCode)
		}
		return fmt.Errorf("watchlist api: %s", envelope.Message)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("watchlist api: decode data: %w", err)
		}
	}
	return nil
}
