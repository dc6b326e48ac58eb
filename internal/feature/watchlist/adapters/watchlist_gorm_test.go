package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_app/internal/feature/watchlist/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = AutoMigrate(db)
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestNewWatchlistRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewWatchlistRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestWatchlistGorm_CreateAndGet(t *testing.T) {
	t.Run("create and get empty watchlist", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		err := repo.Create(context.Background(), "Tech Giants")
		require.NoError(t, err, "failed to create watchlist")

		found, err := repo.Get(context.Background(), "Tech Giants")

		assert.NoError(t, err, "failed to get watchlist")
		assert.NotNil(t, found, "watchlist is nil")
		assert.Equal(t, "Tech Giants", found.Name, "name does not match")
		assert.Empty(t, found.Symbols, "new watchlist should have no symbols")
	})

	t.Run("duplicate name error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		err := repo.Create(context.Background(), "Tech Giants")
		require.NoError(t, err, "failed to create first watchlist")

		err = repo.Create(context.Background(), "Tech Giants")

		assert.Error(t, err, "should return duplicate error")
	})

	t.Run("name not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		found, err := repo.Get(context.Background(), "Missing")

		assert.Error(t, err, "should return error")
		assert.Nil(t, found, "watchlist should be nil")
		assert.ErrorIs(t, err, usecase.ErrWatchlistNotFound, "should return ErrWatchlistNotFound")
	})
}

func TestWatchlistGorm_AddSymbol(t *testing.T) {
	t.Run("symbols are stored in insertion order", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, "Tech"), "failed to create watchlist")
		for _, s := range []string{"AAPL", "MSFT", "TSLA"} {
			require.NoError(t, repo.AddSymbol(ctx, "Tech", s), "failed to add symbol")
		}

		found, err := repo.Get(ctx, "Tech")

		assert.NoError(t, err, "failed to get watchlist")
		assert.Equal(t, []string{"AAPL", "MSFT", "TSLA"}, found.Symbols, "symbols do not match")
	})

	t.Run("adding the same symbol twice keeps one row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, "Tech"), "failed to create watchlist")
		require.NoError(t, repo.AddSymbol(ctx, "Tech", "AAPL"), "failed to add symbol")
		require.NoError(t, repo.AddSymbol(ctx, "Tech", "AAPL"), "second add should not fail")

		found, err := repo.Get(ctx, "Tech")

		assert.NoError(t, err, "failed to get watchlist")
		assert.Equal(t, []string{"AAPL"}, found.Symbols, "symbols do not match")
	})

	t.Run("unknown watchlist error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		err := repo.AddSymbol(context.Background(), "Missing", "AAPL")

		assert.ErrorIs(t, err, usecase.ErrWatchlistNotFound, "should return ErrWatchlistNotFound")
	})
}

func TestWatchlistGorm_RemoveSymbol(t *testing.T) {
	t.Run("remove existing symbol", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, "Tech"), "failed to create watchlist")
		require.NoError(t, repo.AddSymbol(ctx, "Tech", "AAPL"), "failed to add symbol")
		require.NoError(t, repo.AddSymbol(ctx, "Tech", "MSFT"), "failed to add symbol")

		err := repo.RemoveSymbol(ctx, "Tech", "AAPL")
		require.NoError(t, err, "failed to remove symbol")

		found, err := repo.Get(ctx, "Tech")

		assert.NoError(t, err, "failed to get watchlist")
		assert.Equal(t, []string{"MSFT"}, found.Symbols, "symbols do not match")
	})

	t.Run("removing a missing symbol is a no-op", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, "Tech"), "failed to create watchlist")

		err := repo.RemoveSymbol(ctx, "Tech", "NFLX")

		assert.NoError(t, err, "should not fail for missing symbol")
	})
}

func TestWatchlistGorm_Delete(t *testing.T) {
	t.Run("delete removes watchlist and its symbol rows", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, "Tech"), "failed to create watchlist")
		require.NoError(t, repo.AddSymbol(ctx, "Tech", "AAPL"), "failed to add symbol")

		err := repo.Delete(ctx, "Tech")
		require.NoError(t, err, "failed to delete watchlist")

		found, err := repo.Get(ctx, "Tech")
		assert.ErrorIs(t, err, usecase.ErrWatchlistNotFound, "watchlist should be gone")
		assert.Nil(t, found, "watchlist should be nil")

		var rows int64
		require.NoError(t, db.Model(&WatchlistSymbolModel{}).Count(&rows).Error)
		assert.Zero(t, rows, "symbol rows should be deleted with the watchlist")
	})

	t.Run("unknown watchlist error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		err := repo.Delete(context.Background(), "Missing")

		assert.ErrorIs(t, err, usecase.ErrWatchlistNotFound, "should return ErrWatchlistNotFound")
	})
}

func TestWatchlistGorm_ListAll(t *testing.T) {
	t.Run("lists follow creation order", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)
		ctx := context.Background()

		for _, name := range []string{"First", "Second", "Third"} {
			require.NoError(t, repo.Create(ctx, name), "failed to create watchlist")
		}

		all, err := repo.ListAll(ctx)

		assert.NoError(t, err, "failed to list watchlists")
		require.Len(t, all, 3, "unexpected watchlist count")
		assert.Equal(t, "First", all[0].Name, "order does not match")
		assert.Equal(t, "Second", all[1].Name, "order does not match")
		assert.Equal(t, "Third", all[2].Name, "order does not match")
	})

	t.Run("empty database returns empty collection", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)

		all, err := repo.ListAll(context.Background())

		assert.NoError(t, err, "failed to list watchlists")
		assert.Empty(t, all, "collection should be empty")
	})
}

func TestSeedDefaults(t *testing.T) {
	t.Run("seeds defaults into an empty database", func(t *testing.T) {
		db := setupTestDB(t)

		err := SeedDefaults(db)
		require.NoError(t, err, "failed to seed defaults")

		all, err := NewWatchlistRepository(db).ListAll(context.Background())
		require.NoError(t, err, "failed to list watchlists")
		require.Len(t, all, len(DefaultCollection), "unexpected watchlist count")
		assert.Equal(t, "Tech Giants", all[0].Name, "first default does not match")
		assert.Contains(t, all[0].Symbols, "AAPL", "seeded symbols missing")
	})

	t.Run("does not overwrite existing data", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistRepository(db)
		require.NoError(t, repo.Create(context.Background(), "Mine"), "failed to create watchlist")

		err := SeedDefaults(db)
		require.NoError(t, err, "seed should be a no-op")

		all, err := repo.ListAll(context.Background())
		require.NoError(t, err, "failed to list watchlists")
		assert.Len(t, all, 1, "seed must not run on a non-empty database")
	})
}
