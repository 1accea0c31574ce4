package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	fcrank "github.com/AndersSaints/FightcadeRank/internal"
	"github.com/AndersSaints/FightcadeRank/internal/cache"
	"github.com/AndersSaints/FightcadeRank/internal/config"
	"github.com/AndersSaints/FightcadeRank/internal/replay"
	"github.com/AndersSaints/FightcadeRank/internal/store"
)

// Requests flow from the UI to the application workers over a channel, all
// slow work happens off the render goroutine.

type SearchRequest struct {
	Username string
}

type ReplayStatsRequest struct {
	Username string
}

type PageRequest struct {
	Page int
}

type HistoryRequest struct {
	Limit int
}

type ClearCacheRequest struct{}

// Messages below are sent back into the program via UI.Send.

type SearchProgressMsg struct {
	Message string
	Offset  int
}

type SearchResultMsg struct {
	Result fcrank.Result
}

type SearchErrorMsg struct {
	Message string
}

type LeaderboardPageMsg struct {
	Page    int
	Total   int
	Entries []cache.Entry
}

type ReplayStatsMsg struct {
	Username string
	Stats    replay.Stats
}

type HistoryMsg struct {
	Searches []store.Search
}

type CacheStatsMsg cache.Stats

type contentViewPortHeightMsg struct {
	height int
	width  int
}

func setContentViewPortHeight(height int, width int) tea.Cmd {
	return func() tea.Msg {
		return contentViewPortHeightMsg{height: height, width: width}
	}
}

type statusMsg struct {
	Message string
	Err     bool
}

func setStatusMessage(msg string, err bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{Message: msg, Err: err}
	}
}

type clearStatusMessageMsg struct{}

func clearErrorAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return clearStatusMessageMsg{}
	})
}

type selectedEntryMsg struct {
	entry cache.Entry
}

func selectEntry(entry cache.Entry) tea.Cmd {
	return func() tea.Msg {
		return selectedEntryMsg{entry: entry}
	}
}

func setConfig(conf config.Config) tea.Cmd {
	return func() tea.Msg {
		return conf
	}
}

type contentView int

const (
	viewMain contentView = iota
	viewConfig
	viewHelp
)

func setContentView(view contentView) tea.Cmd {
	return func() tea.Msg {
		return view
	}
}
