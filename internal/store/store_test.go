package store_test

import (
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/AndersSaints/FightcadeRank/internal/store"
)

func openTestDB(t *testing.T) *store.Queries {
	t.Helper()

	database, errOpen := store.Open(t.Context(), path.Join(t.TempDir(), "test.db"), true)
	require.NoError(t, errOpen)
	t.Cleanup(func() {
		require.NoError(t, database.Close())
	})

	return store.New(database)
}

func TestSearchHistoryRoundTrip(t *testing.T) {
	queries := openTestDB(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	searches := []store.Search{
		{Username: "daigo", Rank: 3, Tier: "S", Country: "JP", Found: true, SearchedOn: base},
		{Username: "nobody", Found: false, SearchedOn: base.Add(time.Minute)},
		{Username: "justin", Rank: 250, Tier: "B", Country: "US", Found: true, SearchedOn: base.Add(2 * time.Minute)},
	}
	for _, search := range searches {
		require.NoError(t, queries.AddSearch(t.Context(), search))
	}

	recent, errRecent := queries.RecentSearches(t.Context(), 10)
	require.NoError(t, errRecent)
	require.Len(t, recent, 3)

	// Most recent first.
	require.Equal(t, "justin", recent[0].Username)
	require.Equal(t, 250, recent[0].Rank)
	require.Equal(t, "B", recent[0].Tier)
	require.True(t, recent[0].Found)

	require.Equal(t, "nobody", recent[1].Username)
	require.False(t, recent[1].Found)
	require.Empty(t, recent[1].Tier)

	require.Equal(t, "daigo", recent[2].Username)
}

func TestRecentSearchesLimit(t *testing.T) {
	queries := openTestDB(t)

	base := time.Now().UTC()
	for i := range 5 {
		require.NoError(t, queries.AddSearch(t.Context(), store.Search{
			Username:   "player",
			Found:      true,
			SearchedOn: base.Add(time.Duration(i) * time.Second),
		}))
	}

	recent, errRecent := queries.RecentSearches(t.Context(), 2)
	require.NoError(t, errRecent)
	require.Len(t, recent, 2)
}

func TestClearSearches(t *testing.T) {
	queries := openTestDB(t)

	require.NoError(t, queries.AddSearch(t.Context(), store.Search{
		Username: "daigo", Found: true, SearchedOn: time.Now().UTC(),
	}))
	require.NoError(t, queries.ClearSearches(t.Context()))

	recent, errRecent := queries.RecentSearches(t.Context(), 10)
	require.NoError(t, errRecent)
	require.Empty(t, recent)
}

func TestMigrateDownAndUp(t *testing.T) {
	database, errOpen := store.Open(t.Context(), path.Join(t.TempDir(), "test.db"), true)
	require.NoError(t, errOpen)
	t.Cleanup(func() {
		require.NoError(t, database.Close())
	})

	require.NoError(t, store.Migrate(database, store.MigrateDn))
	require.NoError(t, store.Migrate(database, store.MigrateUp))
}
