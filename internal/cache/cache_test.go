package cache_test

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AndersSaints/FightcadeRank/internal/cache"
	"github.com/AndersSaints/FightcadeRank/internal/fightcade"
)

func testPlayers(names ...string) []fightcade.Player {
	players := make([]fightcade.Player, len(names))
	for i, name := range names {
		players[i] = fightcade.Player{
			Name:    name,
			Country: fightcade.Country{Code: "JP"},
			GameInfo: map[string]fightcade.GameInfo{
				"kof2002": {NumMatches: 100 + i, Wins: 60, Losses: 40},
			},
		}
	}

	return players
}

func TestCacheAddAndGet(t *testing.T) {
	store, errNew := cache.New(time.Minute*10, t.TempDir())
	require.NoError(t, errNew)

	require.NoError(t, store.AddPlayers(testPlayers("daigo", "justin", "tokido"), 0))

	entry, found := store.Get("Daigo")
	require.True(t, found, "name match must be case insensitive")
	require.Equal(t, 1, entry.Rank)
	require.True(t, entry.FreshAt(time.Now(), time.Minute*10))

	entry, found = store.Get("tokido")
	require.True(t, found)
	require.Equal(t, 3, entry.Rank)

	_, found = store.Get("nobody")
	require.False(t, found)

	require.Equal(t, 3, store.LastOffset())
}

func TestCachePutRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, errNew := cache.New(time.Minute*10, dir)
	require.NoError(t, errNew)

	player := testPlayers("daigo")[0]
	require.NoError(t, store.Put(player, 7))

	entry, found := store.Get("daigo")
	require.True(t, found)
	require.Equal(t, player, entry.Player)
	require.Equal(t, 7, entry.Rank)
	require.True(t, entry.FreshAt(time.Now(), time.Minute*10))

	// A second put replaces the record wholesale, no partial updates.
	require.NoError(t, store.Put(player, 4))
	entry, _ = store.Get("DAIGO")
	require.Equal(t, 4, entry.Rank)

	// And it survives a restart like any other write.
	reopened, errReopen := cache.New(time.Minute*10, dir)
	require.NoError(t, errReopen)
	entry, found = reopened.Get("daigo")
	require.True(t, found)
	require.Equal(t, 4, entry.Rank)
}

func TestCacheRankFollowsOffset(t *testing.T) {
	store, errNew := cache.New(time.Minute*10, t.TempDir())
	require.NoError(t, errNew)

	require.NoError(t, store.AddPlayers(testPlayers("a", "b"), 0))
	require.NoError(t, store.AddPlayers(testPlayers("c", "d"), 2))

	entry, found := store.Get("c")
	require.True(t, found)
	require.Equal(t, 3, entry.Rank)
	require.Equal(t, 4, store.LastOffset())

	// Duplicate names across batches keep their original rank.
	require.NoError(t, store.AddPlayers(testPlayers("a"), 4))
	entry, _ = store.Get("a")
	require.Equal(t, 1, entry.Rank)
}

func TestCachePersistence(t *testing.T) {
	dir := t.TempDir()

	first, errNew := cache.New(time.Minute*10, dir)
	require.NoError(t, errNew)
	require.NoError(t, first.AddPlayers(testPlayers("daigo"), 0))

	second, errSecond := cache.New(time.Minute*10, dir)
	require.NoError(t, errSecond)

	entry, found := second.Get("daigo")
	require.True(t, found)
	require.Equal(t, 1, entry.Rank)
	require.Equal(t, 1, second.Stats().Players)
}

func TestCacheExpiredGeneration(t *testing.T) {
	// A zero TTL makes every entry stale immediately.
	store, errNew := cache.New(0, t.TempDir())
	require.NoError(t, errNew)

	require.NoError(t, store.AddPlayers(testPlayers("daigo", "justin"), 0))

	// Stale entries stay retrievable for fallback display.
	entry, found := store.Get("daigo")
	require.True(t, found)
	require.False(t, entry.FreshAt(time.Now(), 0))

	// But a new walk starts over from the top.
	require.Equal(t, 0, store.LastOffset())

	// And merging a fresh page drops the expired generation first.
	require.NoError(t, store.AddPlayers(testPlayers("tokido"), 0))
	require.Equal(t, 1, store.Stats().Players)
}

func TestCacheCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(path.Join(dir, "player_cache.json"), []byte("{not json"), 0o600))

	store, errNew := cache.New(time.Minute*10, dir)
	require.NoError(t, errNew)
	require.Equal(t, 0, store.Stats().Players)

	// Still usable after the bad file is ignored.
	require.NoError(t, store.AddPlayers(testPlayers("daigo"), 0))
	_, found := store.Get("daigo")
	require.True(t, found)
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	store, errNew := cache.New(time.Minute*10, dir)
	require.NoError(t, errNew)

	require.NoError(t, store.AddPlayers(testPlayers("daigo"), 0))
	require.NoError(t, store.Clear())

	require.Equal(t, 0, store.Stats().Players)
	require.Equal(t, 0, store.LastOffset())
	_, errStat := os.Stat(path.Join(dir, "player_cache.json"))
	require.True(t, os.IsNotExist(errStat))
}

func TestCacheStats(t *testing.T) {
	store, errNew := cache.New(time.Minute*10, t.TempDir())
	require.NoError(t, errNew)

	stats := store.Stats()
	require.Equal(t, 0, stats.Players)
	require.False(t, stats.Fresh)

	require.NoError(t, store.AddPlayers(testPlayers("daigo", "justin"), 0))

	stats = store.Stats()
	require.Equal(t, 2, stats.Players)
	require.Equal(t, 2, stats.LastOffset)
	require.True(t, stats.Fresh)
	require.Positive(t, stats.SizeBytes)
}
