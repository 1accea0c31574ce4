package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	fcrank "github.com/AndersSaints/FightcadeRank/internal"
	"github.com/AndersSaints/FightcadeRank/internal/cache"
	"github.com/AndersSaints/FightcadeRank/internal/config"
	"github.com/AndersSaints/FightcadeRank/internal/fightcade"
	"github.com/AndersSaints/FightcadeRank/internal/ui"
)

type recordingUI struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingUI) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *recordingUI) Run() error {
	return nil
}

func (r *recordingUI) pageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, msg := range r.msgs {
		if _, ok := msg.(ui.LeaderboardPageMsg); ok {
			count++
		}
	}

	return count
}

func rankingServer(t *testing.T, ranked []string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Req    string `json:"req"`
			Offset int    `json:"offset"`
			Limit  int    `json:"limit"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		results := []map[string]any{}
		end := min(req.Offset+req.Limit, len(ranked))
		for _, name := range ranked[min(req.Offset, len(ranked)):end] {
			results = append(results, map[string]any{"name": name, "country": "JP"})
		}
		fmt.Fprintf(w, `{"res":"OK","results":%s}`, mustJSON(t, map[string]any{
			"results": results, "count": len(ranked),
		}))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func mustJSON(t *testing.T, value any) string {
	t.Helper()

	body, errMarshal := json.Marshal(value)
	require.NoError(t, errMarshal)

	return string(body)
}

// Editing the config while pagination is in flight is an ordinary user
// action, workers must see a consistent config snapshot throughout.
func TestStartServesPagesDuringConfigChanges(t *testing.T) {
	server := rankingServer(t, []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"})

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

	resolver := fcrank.NewResolver(conf, fightcade.New(conf, server.Client()), cacheStore, nil)

	app := NewApp(conf, resolver, cacheStore, nil, nil, make(chan config.Config))
	fake := &recordingUI{}
	app.ui = fake

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan any)

	var group sync.WaitGroup
	group.Add(1)
	go func() {
		defer group.Done()
		app.Start(ctx, done)
	}()

	const pageRequests = 10
	for i := range pageRequests {
		app.parentCtx <- ui.PageRequest{Page: i%3 + 1}

		reload := conf
		reload.PageSize = 2 + i%2
		app.parentCtx <- reload
	}

	require.Eventually(t, func() bool {
		return fake.pageCount() >= pageRequests
	}, time.Second*5, time.Millisecond*10)

	cancel()
	group.Wait()
}
