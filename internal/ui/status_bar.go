package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/AndersSaints/FightcadeRank/internal/cache"
	"github.com/AndersSaints/FightcadeRank/internal/ui/styles"
)

func newStatusBarModel(version string, gameID string) *statusBarModel {
	return &statusBarModel{version: version, gameID: gameID}
}

type statusBarModel struct {
	width       int
	gameID      string
	statusMsg   string
	statusError bool
	cacheStats  cache.Stats
	version     string
}

func (m statusBarModel) Init() tea.Cmd {
	return nil
}

func (m statusBarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.statusMsg = msg.Message
		m.statusError = msg.Err

		return m, clearErrorAfter(clearMessageTimeout)
	case SearchErrorMsg:
		m.statusMsg = msg.Message
		m.statusError = true

		return m, clearErrorAfter(clearMessageTimeout)
	case clearStatusMessageMsg:
		m.statusError = false
		m.statusMsg = ""
	case contentViewPortHeightMsg:
		m.width = msg.width
	case CacheStatsMsg:
		m.cacheStats = cache.Stats(msg)
	}

	return m, nil
}

func (m statusBarModel) View() string {
	args := []string{
		styles.StatusGame.Render(m.gameID),
		styles.StatusCache.Render(m.cacheInfo()),
		styles.StatusVersion.Render(m.version),
		styles.StatusHelp.Render(fmt.Sprintf("%s %s", defaultKeyMap.help.Help().Key, defaultKeyMap.help.Help().Desc)),
		m.status(),
	}

	return lipgloss.NewStyle().Width(m.width).Background(styles.Black).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, args...))
}

func (m statusBarModel) cacheInfo() string {
	if m.cacheStats.Players == 0 {
		return "Cache: empty"
	}

	state := "fresh"
	if !m.cacheStats.Fresh {
		state = "stale"
	}

	return fmt.Sprintf("Cache: %d players, %s, %s",
		m.cacheStats.Players, humanize.Bytes(uint64(m.cacheStats.SizeBytes)), state)
}

func (m statusBarModel) status() string {
	if m.statusMsg == "" {
		return ""
	}

	if m.statusError {
		return styles.StatusError.Render(m.statusMsg)
	}

	return styles.StatusMessage.Render(m.statusMsg)
}
