// Package replay aggregates win/loss statistics from recorded match listings.
package replay

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/AndersSaints/FightcadeRank/internal/fightcade"
)

var ErrFetchReplays = errors.New("failed to fetch replays")

// Fetcher pages through a user's replay listing. Pages are fetched
// sequentially, the API rate limits aggressive clients.
type Fetcher struct {
	client  *fightcade.Client
	perPage int
	delay   time.Duration
}

func NewFetcher(client *fightcade.Client, perPage int, delay time.Duration) *Fetcher {
	return &Fetcher{client: client, perPage: perPage, delay: delay}
}

func (f *Fetcher) Fetch(ctx context.Context, username string, maxReplays int) ([]fightcade.Replay, error) {
	var replays []fightcade.Replay
	for offset := 0; offset < maxReplays; offset += f.perPage {
		page, errPage := f.client.UserReplays(ctx, username, offset, f.perPage)
		if errPage != nil {
			if len(replays) > 0 {
				// Partial results beat none for a stats summary.
				slog.Warn("Replay fetch truncated", slog.String("error", errPage.Error()),
					slog.Int("fetched", len(replays)))

				return replays, nil
			}

			return nil, errors.Join(errPage, ErrFetchReplays)
		}

		if len(page) == 0 {
			break
		}

		replays = append(replays, page...)

		if len(page) < f.perPage {
			break
		}

		timer := time.NewTimer(f.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()

			return replays, ctx.Err() //nolint:wrapcheck
		}
	}

	return replays, nil
}

type NameCount struct {
	Name  string
	Count int
}

// Stats is the aggregate of all processed replays for one player.
type Stats struct {
	TotalMatches int
	Wins         int
	Losses       int
	WinRate      float64
	LastPlayed   time.Time
	Opponents    []NameCount
	Characters   []NameCount
}

// Calculate folds a replay listing into aggregate stats. Rows that do not
// involve the player or are missing a side are skipped, never fatal.
func Calculate(replays []fightcade.Replay, username string) Stats {
	var stats Stats
	opponents := map[string]int{}
	characters := map[string]int{}

	for _, rep := range replays {
		if rep.P1.Name == "" || rep.P2.Name == "" {
			slog.Warn("Incomplete player data in replay", slog.String("quark", rep.QuarkID))

			continue
		}

		isP1 := strings.EqualFold(rep.P1.Name, username)
		if !isP1 && !strings.EqualFold(rep.P2.Name, username) {
			continue
		}

		stats.TotalMatches++

		if rep.TS > 0 {
			if played := time.Unix(rep.TS, 0); played.After(stats.LastPlayed) {
				stats.LastPlayed = played
			}
		}

		if (isP1 && rep.Winner == 1) || (!isP1 && rep.Winner == 2) {
			stats.Wins++
		} else {
			stats.Losses++
		}

		side, other := rep.P1, rep.P2
		if !isP1 {
			side, other = rep.P2, rep.P1
		}

		opponents[strings.ToLower(other.Name)]++
		if side.Character != "" {
			characters[side.Character]++
		}
	}

	if stats.TotalMatches > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.TotalMatches) * 100
	}

	stats.Opponents = sortedCounts(opponents)
	stats.Characters = sortedCounts(characters)

	return stats
}

func sortedCounts(counts map[string]int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}

	slices.SortStableFunc(out, func(a, b NameCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})

	return out
}
