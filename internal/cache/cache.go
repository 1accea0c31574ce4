// Package cache implements a very trivial disk backed cache for leaderboard
// data. Everything lives in a single JSON file that is loaded lazily on first
// use and rewritten wholesale on every mutation.
package cache

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/AndersSaints/FightcadeRank/internal/fightcade"
)

const cacheFileName = "player_cache.json"

var (
	errCacheDir  = errors.New("cache dir error")
	errCacheSave = errors.New("cache save error")
)

// Entry is one cached leaderboard row. Entries are replaced wholesale on
// refresh, never partially updated.
type Entry struct {
	Player    fightcade.Player `json:"player"`
	Rank      int              `json:"rank"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// FreshAt reports whether the entry is still within its time to live. Stale
// entries remain retrievable for fallback display, callers decide what to do
// with them.
func (e Entry) FreshAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) < ttl
}

type cacheFile struct {
	Entries    []Entry `json:"entries"`
	LastOffset int     `json:"last_offset"`
}

// Store persists ranking entries on disk. A single lock serializes access, a
// search can be triggered while a previous page merge is still writing.
type Store struct {
	mu     sync.Mutex
	path   string
	ttl    time.Duration
	loaded bool
	data   cacheFile
}

func New(ttl time.Duration, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		slog.Error("Failed to make cache root", slog.String("error", err.Error()),
			slog.String("path", dir))

		return nil, errors.Join(err, errCacheDir)
	}

	return &Store{path: path.Join(dir, cacheFileName), ttl: ttl}, nil
}

// Get returns the cached entry for a player name, stale or not. The second
// return value reports presence only, freshness is up to the caller via
// Entry.FreshAt.
func (s *Store) Get(name string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	for _, entry := range s.data.Entries {
		if entry.Player.EqualName(name) {
			return entry, true
		}
	}

	return Entry{}, false
}

// Put inserts or replaces a single player record at the given absolute rank.
func (s *Store) Put(player fightcade.Player, rank int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	entry := Entry{Player: player, Rank: rank, FetchedAt: time.Now()}
	for i, existing := range s.data.Entries {
		if existing.Player.EqualName(player.Name) {
			s.data.Entries[i] = entry

			return s.save()
		}
	}

	s.data.Entries = append(s.data.Entries, entry)

	return s.save()
}

// AddPlayers merges a fetched leaderboard page into the cache. If the cached
// generation has expired it is dropped first so ranks stay consistent with
// the walk that produced them. Offset is the absolute position of the first
// player in the batch.
func (s *Store) AddPlayers(players []fightcade.Player, offset int) error {
	if len(players) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	now := time.Now()
	if len(s.data.Entries) > 0 && !s.data.Entries[0].FreshAt(now, s.ttl) {
		slog.Info("Cache generation expired, clearing",
			slog.Int("players", len(s.data.Entries)))
		s.data = cacheFile{}
	}

	existing := make(map[string]struct{}, len(s.data.Entries))
	for _, entry := range s.data.Entries {
		existing[strings.ToLower(entry.Player.Name)] = struct{}{}
	}

	added := 0
	for i, player := range players {
		if _, found := existing[strings.ToLower(player.Name)]; found {
			continue
		}

		s.data.Entries = append(s.data.Entries, Entry{
			Player:    player,
			Rank:      offset + i + 1,
			FetchedAt: now,
		})
		added++
	}

	s.data.LastOffset = max(s.data.LastOffset, offset+len(players))

	if added == 0 {
		return nil
	}

	slog.Info("Players added to cache", slog.Int("new", added),
		slog.Int("total", len(s.data.Entries)))

	return s.save()
}

// Entries returns a snapshot of all cached rows in rank order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	out := make([]Entry, len(s.data.Entries))
	copy(out, s.data.Entries)

	return out
}

// LastOffset is the next leaderboard offset a search walk should resume from.
// An expired generation restarts from the top.
func (s *Store) LastOffset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	if len(s.data.Entries) > 0 && !s.data.Entries[0].FreshAt(time.Now(), s.ttl) {
		return 0
	}

	return s.data.LastOffset
}

type Stats struct {
	Players    int
	LastOffset int
	Fresh      bool
	Age        time.Duration
	SizeBytes  int64
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	stats := Stats{
		Players:    len(s.data.Entries),
		LastOffset: s.data.LastOffset,
	}

	if len(s.data.Entries) > 0 {
		now := time.Now()
		stats.Fresh = s.data.Entries[0].FreshAt(now, s.ttl)
		stats.Age = now.Sub(s.data.Entries[0].FetchedAt)
	}

	if info, err := os.Stat(s.path); err == nil {
		stats.SizeBytes = info.Size()
	}

	return stats
}

// Clear drops everything, in memory and on disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = cacheFile{}
	s.loaded = true

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(err, errCacheSave)
	}

	return nil
}

// load pulls the cache file into memory once per process run. A missing or
// corrupt file degrades to an empty cache, never an error.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	body, errRead := os.ReadFile(s.path)
	if errRead != nil {
		if !errors.Is(errRead, os.ErrNotExist) {
			slog.Error("Failed to read cache file", slog.String("error", errRead.Error()))
		}

		return
	}

	var data cacheFile
	if err := json.Unmarshal(body, &data); err != nil {
		slog.Error("Cache file corrupt, starting empty", slog.String("error", err.Error()))

		return
	}

	s.data = data
	slog.Info("Cache loaded", slog.Int("players", len(data.Entries)),
		slog.Int("last_offset", data.LastOffset))
}

func (s *Store) save() error {
	body, errMarshal := json.Marshal(s.data)
	if errMarshal != nil {
		return errors.Join(errMarshal, errCacheSave)
	}

	if err := os.WriteFile(s.path, body, 0o600); err != nil {
		return errors.Join(err, errCacheSave)
	}

	return nil
}
