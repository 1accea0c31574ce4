package fightcade_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AndersSaints/FightcadeRank/internal/config"
	"github.com/AndersSaints/FightcadeRank/internal/fightcade"
)

type envelope struct {
	Req      string `json:"req"`
	Username string `json:"username"`
	GameID   string `json:"gameid"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
	ByElo    bool   `json:"byElo"`
	Recent   bool   `json:"recent"`
}

func rankingRow(name string) map[string]any {
	return map[string]any{
		"name":    name,
		"country": map[string]any{"iso_code": "JP", "full_name": "Japan"},
		"gameinfo": map[string]any{
			"kof2002": map[string]any{"num_matches": 120, "wins": 80, "losses": 40},
		},
	}
}

// newTestServer answers like the ranking API. Rate limits the searchrankings
// request the given number of times before answering normally.
func newTestServer(t *testing.T, rateLimits int) *httptest.Server {
	t.Helper()

	var searches atomic.Int64

	mux := http.NewServeMux()
	// Session warm up hits the root.
	mux.HandleFunc("GET /", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/get_user_replays/{user}/{game}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "kof2002", r.PathValue("game"))
		body := map[string]any{"res": "OK", "results": []map[string]any{
			{"quarkid": "q1", "ts": 1700000000, "winner": 1,
				"p1": map[string]any{"name": r.PathValue("user"), "char": "kyo"},
				"p2": map[string]any{"name": "rival", "char": "iori"}},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(body))
	})
	mux.HandleFunc("POST /api/", func(w http.ResponseWriter, r *http.Request) {
		var req envelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch req.Req {
		case "getuser":
			if req.Username == "missing" {
				fmt.Fprint(w, `{"res":"user not found"}`)

				return
			}
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"res":  "OK",
				"user": map[string]any{"name": req.Username},
			}))
		case "searchrankings":
			require.Equal(t, "kof2002", req.GameID)
			require.True(t, req.ByElo)

			if searches.Add(1) <= int64(rateLimits) {
				fmt.Fprint(w, `{"res":"ERROR","error":"rate limit exceeded"}`)

				return
			}

			results := []map[string]any{}
			for i := range req.Limit {
				results = append(results, rankingRow(fmt.Sprintf("player%d", req.Offset+i)))
			}
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"res":     "OK",
				"results": map[string]any{"results": results, "count": 5000},
			}))
		default:
			t.Errorf("unexpected request type %q", req.Req)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func testConfig(server *httptest.Server) config.Config {
	return config.Config{
		GameID:     "kof2002",
		APIBaseURL: server.URL + "/api/",
		UserAgent:  "test-agent",
		BatchSize:  100,
	}
}

func TestGetUser(t *testing.T) {
	server := newTestServer(t, 0)
	client := fightcade.New(testConfig(server), server.Client())

	user, errUser := client.GetUser(t.Context(), "daigo")
	require.NoError(t, errUser)
	require.Equal(t, "daigo", user.Name)

	_, errMissing := client.GetUser(t.Context(), "missing")
	require.ErrorIs(t, errMissing, fightcade.ErrNotFound)
}

func TestSearchRankings(t *testing.T) {
	server := newTestServer(t, 0)
	client := fightcade.New(testConfig(server), server.Client())

	players, errSearch := client.SearchRankings(t.Context(), 100, 3)
	require.NoError(t, errSearch)
	require.Len(t, players, 3)
	require.Equal(t, "player100", players[0].Name)
	require.Equal(t, "JP", players[0].Country.Code)
	require.Equal(t, 120, players[0].Stats("kof2002").NumMatches)
}

func TestSearchRankingsRateLimited(t *testing.T) {
	server := newTestServer(t, 1)
	client := fightcade.New(testConfig(server), server.Client())

	_, errSearch := client.SearchRankings(t.Context(), 0, 3)
	require.ErrorIs(t, errSearch, fightcade.ErrRateLimited)

	// The next attempt goes through.
	players, errRetry := client.SearchRankings(t.Context(), 0, 3)
	require.NoError(t, errRetry)
	require.Len(t, players, 3)
}

func TestSearchRankingsHTTPTooManyRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusTooManyRequests)

			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := fightcade.New(testConfig(server), server.Client())
	_, errSearch := client.SearchRankings(t.Context(), 0, 3)
	require.ErrorIs(t, errSearch, fightcade.ErrRateLimited)
}

func TestRequestRetriesTransientFailures(t *testing.T) {
	var failures atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/", func(w http.ResponseWriter, _ *http.Request) {
		if failures.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)

			return
		}
		fmt.Fprint(w, `{"res":"OK","user":{"name":"daigo"}}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := fightcade.New(testConfig(server), server.Client())
	user, errUser := client.GetUser(t.Context(), "daigo")
	require.NoError(t, errUser)
	require.Equal(t, "daigo", user.Name)
}

func TestWarmUpHappensOnce(t *testing.T) {
	var warmUps atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, _ *http.Request) {
		warmUps.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"res":"OK","results":{"results":[],"count":0}}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := fightcade.New(testConfig(server), server.Client())

	// Pagination and a search lookup can hit the client from separate
	// worker goroutines at the same time.
	var group sync.WaitGroup
	for range 4 {
		group.Add(1)
		go func() {
			defer group.Done()
			_, errSearch := client.SearchRankings(t.Context(), 0, 3)
			require.NoError(t, errSearch)
		}()
	}
	group.Wait()

	require.Equal(t, int64(1), warmUps.Load())
}

func TestUserReplays(t *testing.T) {
	server := newTestServer(t, 0)
	client := fightcade.New(testConfig(server), server.Client())

	replays, errReplays := client.UserReplays(t.Context(), "daigo", 0, 10)
	require.NoError(t, errReplays)
	require.Len(t, replays, 1)
	require.Equal(t, "daigo", replays[0].P1.Name)
	require.Equal(t, "kyo", replays[0].P1.Character)
	require.Equal(t, 1, replays[0].Winner)
}

func TestCountryDecodesBothShapes(t *testing.T) {
	var fromString fightcade.Player
	require.NoError(t, json.Unmarshal([]byte(`{"name":"a","country":"BR"}`), &fromString))
	require.Equal(t, "BR", fromString.Country.Code)

	var fromObject fightcade.Player
	require.NoError(t, json.Unmarshal(
		[]byte(`{"name":"b","country":{"iso_code":"JP","full_name":"Japan"}}`), &fromObject))
	require.Equal(t, "JP", fromObject.Country.Code)
	require.Equal(t, "Japan", fromObject.Country.Name)
}
