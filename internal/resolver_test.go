package internal_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fcrank "github.com/AndersSaints/FightcadeRank/internal"
	"github.com/AndersSaints/FightcadeRank/internal/cache"
	"github.com/AndersSaints/FightcadeRank/internal/config"
	"github.com/AndersSaints/FightcadeRank/internal/fightcade"
	"github.com/AndersSaints/FightcadeRank/internal/rank"
)

// fakeLeaderboard serves a fixed ranking of the given players in order.
func fakeLeaderboard(t *testing.T, ranked []string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Req      string `json:"req"`
			Username string `json:"username"`
			Offset   int    `json:"offset"`
			Limit    int    `json:"limit"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch req.Req {
		case "getuser":
			if req.Username == "ghost" {
				fmt.Fprint(w, `{"res":"user not found"}`)

				return
			}
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"res": "OK", "user": map[string]any{"name": req.Username},
			}))
		case "searchrankings":
			end := min(req.Offset+req.Limit, len(ranked))
			results := []map[string]any{}
			for _, name := range ranked[min(req.Offset, len(ranked)):end] {
				results = append(results, map[string]any{
					"name":    name,
					"country": "JP",
					"gameinfo": map[string]any{
						"kof2002": map[string]any{"num_matches": 50, "wins": 30, "losses": 20},
					},
				})
			}
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"res": "OK", "results": map[string]any{"results": results, "count": len(ranked)},
			}))
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func testResolver(t *testing.T, server *httptest.Server) *fcrank.Resolver {
	t.Helper()

	conf := config.Config{
		GameID:          "kof2002",
		APIBaseURL:      server.URL + "/api/",
		UserAgent:       "test-agent",
		CacheTTLSecs:    600,
		BatchSize:       2,
		MaxSearchOffset: 10,
		PageSize:        2,
	}

	cacheStore, errCache := cache.New(conf.CacheTTL(), t.TempDir())
	require.NoError(t, errCache)

	return fcrank.NewResolver(conf, fightcade.New(conf, server.Client()), cacheStore, nil)
}

func TestLookupWalksToPlayer(t *testing.T) {
	server := fakeLeaderboard(t, []string{"alpha", "bravo", "charlie", "delta", "echo"})
	resolver := testResolver(t, server)

	var progress []fcrank.Progress
	result, errLookup := resolver.Lookup(t.Context(), "Charlie", func(p fcrank.Progress) {
		progress = append(progress, p)
	})
	require.NoError(t, errLookup)
	require.Equal(t, 3, result.Rank)
	require.Equal(t, rank.TierS, result.Tier)
	require.Equal(t, "charlie", result.Player.Name)
	require.False(t, result.FromCache)
	require.NotEmpty(t, progress)

	// The walk cached every page it touched, a second lookup is local.
	cached, errCached := resolver.Lookup(t.Context(), "alpha", nil)
	require.NoError(t, errCached)
	require.Equal(t, 1, cached.Rank)
	require.True(t, cached.FromCache)
}

func TestLookupUnknownUser(t *testing.T) {
	server := fakeLeaderboard(t, []string{"alpha"})
	resolver := testResolver(t, server)

	_, errLookup := resolver.Lookup(t.Context(), "ghost", nil)
	require.ErrorIs(t, errLookup, fightcade.ErrNotFound)
}

func TestLookupUnrankedUser(t *testing.T) {
	server := fakeLeaderboard(t, []string{"alpha", "bravo"})
	resolver := testResolver(t, server)

	// Exists per getuser but never shows up on the board.
	_, errLookup := resolver.Lookup(t.Context(), "spectator", nil)
	require.ErrorIs(t, errLookup, fcrank.ErrNotRanked)
}

func TestLookupEmptyName(t *testing.T) {
	server := fakeLeaderboard(t, nil)
	resolver := testResolver(t, server)

	_, errLookup := resolver.Lookup(t.Context(), "   ", nil)
	require.ErrorIs(t, errLookup, fcrank.ErrEmptyName)
}

func TestPage(t *testing.T) {
	server := fakeLeaderboard(t, []string{"alpha", "bravo", "charlie", "delta", "echo"})
	resolver := testResolver(t, server)

	entries, total, errPage := resolver.Page(t.Context(), 2)
	require.NoError(t, errPage)
	require.Len(t, entries, 2)
	require.Equal(t, "charlie", entries[0].Player.Name)
	require.Equal(t, 3, entries[0].Rank)
	require.GreaterOrEqual(t, total, 4)

	// Pages past the end come back empty, not as an error.
	empty, _, errEmpty := resolver.Page(t.Context(), 40)
	require.NoError(t, errEmpty)
	require.Empty(t, empty)
}

func TestPagePacesRemoteFetches(t *testing.T) {
	server := fakeLeaderboard(t, []string{"alpha", "bravo", "charlie", "delta"})

	conf := config.Config{
		GameID:           "kof2002",
		APIBaseURL:       server.URL + "/api/",
		UserAgent:        "test-agent",
		CacheTTLSecs:     600,
		BatchSize:        2,
		MaxSearchOffset:  10,
		PageSize:         2,
		RequestDelaySecs: 3600,
	}

	cacheStore, errCache := cache.New(conf.CacheTTL(), t.TempDir())
	require.NoError(t, errCache)

	resolver := fcrank.NewResolver(conf, fightcade.New(conf, server.Client()), cacheStore, nil)

	ctx, cancel := context.WithTimeout(t.Context(), time.Millisecond*100)
	defer cancel()

	// Page 2 needs a second remote batch, which only goes out after the
	// request delay has passed.
	_, _, errPage := resolver.Page(ctx, 2)
	require.ErrorIs(t, errPage, context.DeadlineExceeded)

	// The first batch landed in the cache before the delay started.
	require.Equal(t, 2, cacheStore.Stats().Players)
}
