package watchlist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestAPIClient_FetchWatchlists はエンベロープのdataのデコードを検証します。
func TestAPIClient_FetchWatchlists(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/watchlist" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"success":true,"message":"Watchlists retrieved successfully","data":[
			{"name":"Tech Giants","stockCount":1,"stocks":["AAPL"]}]}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewAPIClient(server.URL+"/api", server.Client())

	items, err := client.FetchWatchlists(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Tech Giants" || items[0].Stocks[0] != "AAPL" {
		t.Errorf("unexpected items: %+v", items)
	}
}

// TestAPIClient_AddToWatchlist はリクエストボディの形を検証します。
func TestAPIClient_AddToWatchlist(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/watchlist/add" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body["watchlistName"] != "Tech Giants" || body["symbol"] != "tsla" || body["createNew"] != true {
			t.Errorf("unexpected body: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"success":true,"message":"Stock added to watchlist successfully"}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewAPIClient(server.URL+"/api", server.Client())

	if err := client.AddToWatchlist(context.Background(), "Tech Giants", "tsla", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestAPIClient_ErrorEnvelope はsuccess=falseがサーバメッセージ付きエラーに
// なることを検証します。
func TestAPIClient_ErrorEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		if _, err := w.Write([]byte(`{"success":false,"message":"watchlist not found"}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewAPIClient(server.URL+"/api", server.Client())

	err := client.DeleteWatchlist(context.Background(), "Missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "watchlist not found") {
		t.Errorf("expected server message in error, got %v", err)
	}
}

// TestAPIClient_PathEscaping はリスト名・シンボルのパスエスケープを検証します。
func TestAPIClient_PathEscaping(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"success":true,"message":"Watchlist deleted successfully"}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewAPIClient(server.URL+"/api", server.Client())

	if err := client.DeleteWatchlist(context.Background(), "Tech Giants"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/watchlist/Tech%20Giants" {
		t.Errorf("unexpected path: %s", gotPath)
	}
}

// TestAPIClient_NonJSONResponse はJSON以外の応答がデコードエラーになる
// ことを検証します。
func TestAPIClient_NonJSONResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		if _, err := w.Write([]byte("<html>bad gateway</html>")); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewAPIClient(server.URL+"/api", server.Client())

	if _, err := client.FetchWatchlists(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
