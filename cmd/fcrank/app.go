package main

import (
	"context"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	fcrank "github.com/AndersSaints/FightcadeRank/internal"
	"github.com/AndersSaints/FightcadeRank/internal/cache"
	"github.com/AndersSaints/FightcadeRank/internal/config"
	"github.com/AndersSaints/FightcadeRank/internal/rank"
	"github.com/AndersSaints/FightcadeRank/internal/replay"
	"github.com/AndersSaints/FightcadeRank/internal/store"
	"github.com/AndersSaints/FightcadeRank/internal/ui"
)

// searchWorkers bounds how many API-bound requests run at once. The ranking
// API rate limits aggressively, so this stays small.
const searchWorkers = 2

const historyPageLimit = 50

type UI interface {
	Send(msg tea.Msg)
	Run() error
}

// App is the main application container. Very little logic is contained within
// this struct. Its mostly responsible for routing requests from the UI to the
// resolver and results back again.
type App struct {
	ui UI
	// configMu guards config, the event loop updates it while workers read it.
	configMu      sync.RWMutex
	config        config.Config
	resolver      *fcrank.Resolver
	cache         *cache.Store
	history       *store.Queries
	replays       *replay.Fetcher
	configUpdates chan config.Config
	parentCtx     chan any
}

// NewApp returns a new application instance. To actually start the app you
// must call Start().
func NewApp(conf config.Config, resolver *fcrank.Resolver, cacheStore *cache.Store, history *store.Queries,
	replays *replay.Fetcher, configUpdates chan config.Config,
) *App {
	return &App{
		config:        conf,
		resolver:      resolver,
		cache:         cacheStore,
		history:       history,
		replays:       replays,
		configUpdates: configUpdates,
		parentCtx:     make(chan any, 8),
	}
}

// Start brings up the request workers and runs the main event loop until the
// context finishes or the UI exits.
func (app *App) Start(ctx context.Context, done <-chan any) {
	requests := make(chan any)

	group, groupCtx := errgroup.WithContext(ctx)
	for range searchWorkers {
		group.Go(func() error {
			for {
				select {
				case req, ok := <-requests:
					if !ok {
						return nil
					}
					app.handle(groupCtx, req)
				case <-groupCtx.Done():
					return nil
				}
			}
		})
	}

	// Prime the UI with whatever is already on disk.
	app.parentCtx <- ui.HistoryRequest{Limit: historyPageLimit}
	app.sendCacheStats()

	running := true
	for running {
		select {
		case req := <-app.parentCtx:
			if conf, ok := req.(config.Config); ok {
				app.setConfig(conf)

				continue
			}

			select {
			case requests <- req:
			case <-ctx.Done():
				running = false
			}
		case conf := <-app.configUpdates:
			app.setConfig(conf)
			if app.ui != nil {
				app.ui.Send(conf)
			}
		case <-ctx.Done():
			running = false
		case <-done:
			running = false
		}
	}

	close(requests)

	if err := group.Wait(); err != nil {
		slog.Error("Worker exited with error", slog.String("error", err.Error()))
	}
}

func (app *App) handle(ctx context.Context, req any) {
	switch req := req.(type) {
	case ui.SearchRequest:
		app.onSearch(ctx, req)
	case ui.PageRequest:
		app.onPage(ctx, req)
	case ui.ReplayStatsRequest:
		app.onReplayStats(ctx, req)
	case ui.HistoryRequest:
		app.onHistory(ctx, req)
	case ui.ClearCacheRequest:
		app.onClearCache()
	default:
		slog.Warn("Unhandled request", slog.Any("request", req))
	}
}

func (app *App) onSearch(ctx context.Context, req ui.SearchRequest) {
	result, errLookup := app.resolver.Lookup(ctx, req.Username, func(progress fcrank.Progress) {
		app.send(ui.SearchProgressMsg{Message: progress.Message, Offset: progress.Offset})
	})

	app.sendCacheStats()
	app.onHistory(ctx, ui.HistoryRequest{Limit: historyPageLimit})

	if errLookup != nil {
		app.send(ui.SearchErrorMsg{Message: errLookup.Error()})

		return
	}

	app.send(ui.SearchResultMsg{Result: result})

	// Jump the leaderboard view to the page the player landed on.
	app.onPage(ctx, ui.PageRequest{Page: rank.PageForRank(result.Rank, app.currentConfig().PageSize)})
}

func (app *App) onPage(ctx context.Context, req ui.PageRequest) {
	entries, total, errPage := app.resolver.Page(ctx, req.Page)
	if errPage != nil {
		app.send(ui.SearchErrorMsg{Message: errPage.Error()})

		return
	}

	pageSize := app.currentConfig().PageSize
	totalPages := (total + pageSize - 1) / pageSize
	app.send(ui.LeaderboardPageMsg{Page: req.Page, Total: totalPages, Entries: entries})
	app.sendCacheStats()
}

func (app *App) onReplayStats(ctx context.Context, req ui.ReplayStatsRequest) {
	replays, errFetch := app.replays.Fetch(ctx, req.Username, app.currentConfig().MaxReplays)
	if errFetch != nil && len(replays) == 0 {
		app.send(ui.SearchErrorMsg{Message: errFetch.Error()})

		return
	}

	app.send(ui.ReplayStatsMsg{Username: req.Username, Stats: replay.Calculate(replays, req.Username)})
}

func (app *App) onHistory(ctx context.Context, req ui.HistoryRequest) {
	if app.history == nil {
		return
	}

	searches, errSearches := app.history.RecentSearches(ctx, req.Limit)
	if errSearches != nil {
		slog.Error("Failed to load search history", slog.String("error", errSearches.Error()))

		return
	}

	app.send(ui.HistoryMsg{Searches: searches})
}

func (app *App) onClearCache() {
	if err := app.cache.Clear(); err != nil {
		app.send(ui.SearchErrorMsg{Message: err.Error()})

		return
	}

	app.sendCacheStats()
	app.send(ui.LeaderboardPageMsg{Page: 1, Total: 0, Entries: nil})
}

func (app *App) sendCacheStats() {
	app.send(ui.CacheStatsMsg(app.cache.Stats()))
}

func (app *App) currentConfig() config.Config {
	app.configMu.RLock()
	defer app.configMu.RUnlock()

	return app.config
}

func (app *App) setConfig(conf config.Config) {
	app.configMu.Lock()
	app.config = conf
	app.configMu.Unlock()
}

func (app *App) send(msg tea.Msg) {
	if app.ui != nil {
		app.ui.Send(msg)
	}
}

func (app *App) createUI(ctx context.Context, loader *config.Loader, doSetup bool) UI {
	if app.ui == nil {
		app.ui = ui.New(
			ctx,
			app.currentConfig(),
			doSetup,
			BuildVersion,
			BuildDate,
			BuildCommit,
			loader,
			config.PathCache(config.CacheDirName),
			app.parentCtx)
	}

	return app.ui
}
