package internal

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/AndersSaints/FightcadeRank/internal/cache"
	"github.com/AndersSaints/FightcadeRank/internal/config"
	"github.com/AndersSaints/FightcadeRank/internal/fightcade"
	"github.com/AndersSaints/FightcadeRank/internal/rank"
	"github.com/AndersSaints/FightcadeRank/internal/store"
)

var (
	ErrEmptyName = errors.New("player name cannot be empty")
	// ErrNotRanked means the user exists but was not found within the
	// configured search depth of the leaderboard.
	ErrNotRanked = errors.New("player not found in rankings")
)

// Progress is sent back to the caller while a search walks leaderboard pages.
type Progress struct {
	Message string
	Offset  int
}

// Result is a completed lookup. Stale marks a fallback served from an expired
// cache entry after the live walk failed.
type Result struct {
	Player    fightcade.Player
	Rank      int
	Tier      rank.Tier
	FromCache bool
	Stale     bool
	FetchedAt time.Time
}

// Resolver answers "where does this player sit on the leaderboard" using the
// disk cache first and the remote API for whatever is missing or expired.
type Resolver struct {
	conf    config.Config
	client  *fightcade.Client
	cache   *cache.Store
	history *store.Queries
}

func NewResolver(conf config.Config, client *fightcade.Client, cacheStore *cache.Store, history *store.Queries) *Resolver {
	return &Resolver{conf: conf, client: client, cache: cacheStore, history: history}
}

// Lookup resolves a player to an absolute rank and tier. The progress
// callback may be nil.
func (r *Resolver) Lookup(ctx context.Context, username string, progress func(Progress)) (Result, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Result{}, ErrEmptyName
	}

	update := func(message string, offset int) {
		if progress != nil {
			progress(Progress{Message: message, Offset: offset})
		}
		slog.Info("Search progress", slog.String("message", message), slog.Int("offset", offset))
	}

	update("Checking if player exists...", 0)
	if _, errUser := r.client.GetUser(ctx, username); errUser != nil {
		if errors.Is(errUser, fightcade.ErrNotFound) {
			r.record(ctx, username, Result{}, false)
		}

		return Result{}, errUser
	}

	update("Player found, searching for ranking...", 0)

	now := time.Now()
	entry, cached := r.cache.Get(username)
	if cached && entry.FreshAt(now, r.conf.CacheTTL()) {
		update("Found player in cache", entry.Rank)
		result := r.result(entry.Player, entry.Rank, entry.FetchedAt, true, false)
		r.record(ctx, username, result, true)

		return result, nil
	}

	result, errWalk := r.walk(ctx, username, update)
	if errWalk != nil {
		// The walk came up empty or broke down. A stale cached record still
		// beats nothing for display purposes.
		if cached && !errors.Is(errWalk, context.Canceled) {
			update("Serving stale cached result", entry.Rank)

			return r.result(entry.Player, entry.Rank, entry.FetchedAt, true, true), nil
		}

		if errors.Is(errWalk, ErrNotRanked) {
			r.record(ctx, username, Result{}, false)
		}

		return Result{}, errWalk
	}

	if !result.FromCache {
		// Pin the found record itself, the page merge may have kept an older
		// row for the same player.
		if errPut := r.cache.Put(result.Player, result.Rank); errPut != nil {
			slog.Error("Failed to cache found player", slog.String("error", errPut.Error()))
		}
	}

	r.record(ctx, username, result, true)

	return result, nil
}

// walk pages through the leaderboard from the last cached offset, merging
// every batch into the cache until the player shows up or the depth limit is
// reached. Last write wins on concurrent searches, the cache dedupes.
func (r *Resolver) walk(ctx context.Context, username string, update func(string, int)) (Result, error) {
	offset := r.cache.LastOffset()

	// The wanted row may already be inside a previously cached page.
	if entry, found := r.cache.Get(username); found && entry.FreshAt(time.Now(), r.conf.CacheTTL()) {
		return r.result(entry.Player, entry.Rank, entry.FetchedAt, true, false), nil
	}

	for offset < r.conf.MaxSearchOffset {
		update("Searching...", offset)

		players, errSearch := r.client.SearchRankings(ctx, offset, r.conf.BatchSize)
		if errSearch != nil {
			if errors.Is(errSearch, fightcade.ErrRateLimited) {
				update("Rate limited, waiting...", offset)
				if err := wait(ctx, r.conf.RateLimitDelay()); err != nil {
					return Result{}, err
				}

				continue
			}

			return Result{}, errSearch
		}

		if len(players) == 0 {
			break
		}

		if errAdd := r.cache.AddPlayers(players, offset); errAdd != nil {
			slog.Error("Failed to cache page", slog.String("error", errAdd.Error()))
		}

		for i, player := range players {
			if player.EqualName(username) {
				position := offset + i + 1
				update("Found player", position)

				return r.result(player, position, time.Now(), false, false), nil
			}
		}

		offset += r.conf.BatchSize

		if err := wait(ctx, r.conf.RequestDelay()); err != nil {
			return Result{}, err
		}
	}

	return Result{}, ErrNotRanked
}

// Page returns one UI page of the cached leaderboard, fetching remote pages
// on demand until the cache covers the requested range. Pages are 1-based.
func (r *Resolver) Page(ctx context.Context, page int) ([]cache.Entry, int, error) {
	if page < 1 {
		page = 1
	}

	needed := page * r.conf.PageSize
	for r.cache.Stats().Players < needed {
		offset := r.cache.LastOffset()
		if offset >= r.conf.MaxSearchOffset {
			break
		}

		players, errSearch := r.client.SearchRankings(ctx, offset, r.conf.BatchSize)
		if errSearch != nil {
			if errors.Is(errSearch, fightcade.ErrRateLimited) {
				if err := wait(ctx, r.conf.RateLimitDelay()); err != nil {
					return nil, 0, err
				}

				continue
			}

			return nil, 0, errSearch
		}

		if len(players) == 0 {
			break
		}

		if errAdd := r.cache.AddPlayers(players, offset); errAdd != nil {
			return nil, 0, errAdd
		}

		// Same pacing as the search walk, deep paging is still subject to
		// the API's rate limits.
		if r.cache.Stats().Players < needed {
			if err := wait(ctx, r.conf.RequestDelay()); err != nil {
				return nil, 0, err
			}
		}
	}

	entries := r.cache.Entries()
	start := (page - 1) * r.conf.PageSize
	if start >= len(entries) {
		return nil, len(entries), nil
	}

	end := min(start+r.conf.PageSize, len(entries))

	return entries[start:end], len(entries), nil
}

func (r *Resolver) result(player fightcade.Player, position int, fetchedAt time.Time, fromCache bool, stale bool) Result {
	return Result{
		Player:    player,
		Rank:      position,
		Tier:      rank.ForRank(position),
		FromCache: fromCache,
		Stale:     stale,
		FetchedAt: fetchedAt,
	}
}

func (r *Resolver) record(ctx context.Context, username string, result Result, found bool) {
	if r.history == nil {
		return
	}

	search := store.Search{
		Username:   username,
		Found:      found,
		SearchedOn: time.Now(),
	}
	if found {
		search.Rank = result.Rank
		search.Tier = string(result.Tier)
		search.Country = result.Player.Country.Code
	}

	if err := r.history.AddSearch(ctx, search); err != nil {
		slog.Error("Failed to record search", slog.String("error", err.Error()))
	}
}

// wait blocks for the duration unless the context finishes first.
func wait(ctx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	}
}
