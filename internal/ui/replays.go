package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AndersSaints/FightcadeRank/internal/replay"
	"github.com/AndersSaints/FightcadeRank/internal/ui/styles"
)

type requestReplaysMsg struct {
	username string
}

func requestReplays(username string) tea.Cmd {
	return func() tea.Msg {
		return requestReplaysMsg{username: username}
	}
}

func newReplaysModel() replaysModel {
	return replaysModel{}
}

// replaysModel shows aggregate replay stats for the last searched player.
type replaysModel struct {
	username string
	stats    replay.Stats
	loaded   bool
	loading  bool
	width    int
}

func (m replaysModel) Init() tea.Cmd {
	return nil
}

func (m replaysModel) Update(msg tea.Msg) (replaysModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contentViewPortHeightMsg:
		m.width = msg.width
	case SearchResultMsg:
		// New player, old stats no longer apply.
		if m.username != msg.Result.Player.Name {
			m.username = msg.Result.Player.Name
			m.stats = replay.Stats{}
			m.loaded = false
		}
	case ReplayStatsMsg:
		if m.username == msg.Username {
			m.stats = msg.Stats
			m.loaded = true
			m.loading = false
		}
	case tea.KeyMsg:
		if key.Matches(msg, defaultKeyMap.refresh) && m.username != "" && !m.loading {
			m.loading = true

			return m, tea.Batch(
				requestReplays(m.username),
				setStatusMessage("Fetching replays for "+m.username, false))
		}
	}

	return m, nil
}

func (m replaysModel) Render(maxHeight int) string {
	titleBar := renderTitleBar(m.width, "Replay Stats")

	if m.username == "" {
		return lipgloss.JoinVertical(lipgloss.Top, titleBar,
			styles.InfoMessage.Render("Search for a player first."))
	}

	if !m.loaded {
		if m.loading {
			return lipgloss.JoinVertical(lipgloss.Top, titleBar,
				styles.InfoMessage.Render("Fetching replays for "+m.username+"..."))
		}

		return lipgloss.JoinVertical(lipgloss.Top, titleBar,
			styles.InfoMessage.Render("Press r to fetch replay stats for "+m.username+"."))
	}

	if m.stats.TotalMatches == 0 {
		return lipgloss.JoinVertical(lipgloss.Top, titleBar,
			styles.InfoMessage.Render("No replays found for "+m.username+"."))
	}

	rows := []string{
		styles.DetailRow("Player:", m.username),
		styles.DetailRow("Matches:", fmt.Sprintf("%d", m.stats.TotalMatches)),
		styles.DetailRow("Record:", fmt.Sprintf("%d W / %d L (%.1f%%)", m.stats.Wins, m.stats.Losses, m.stats.WinRate)),
		styles.DetailRow("Last Played:", age(m.stats.LastPlayed)),
	}

	for i, opponent := range m.stats.Opponents {
		if i >= 3 {
			break
		}

		label := "Top Opponents:"
		if i > 0 {
			label = ""
		}
		rows = append(rows, styles.DetailRow(label, fmt.Sprintf("%s (%d)", opponent.Name, opponent.Count)))
	}

	for i, char := range m.stats.Characters {
		if i >= 3 {
			break
		}

		label := "Characters:"
		if i > 0 {
			label = ""
		}
		rows = append(rows, styles.DetailRow(label, fmt.Sprintf("%s (%d)", char.Name, char.Count)))
	}

	if maxHeight > 1 && len(rows) > maxHeight-1 {
		rows = rows[:maxHeight-1]
	}

	return lipgloss.JoinVertical(lipgloss.Top, titleBar,
		lipgloss.JoinVertical(lipgloss.Top, rows...))
}
