package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	fcrank "github.com/AndersSaints/FightcadeRank/internal"
	"github.com/AndersSaints/FightcadeRank/internal/rank"
	"github.com/AndersSaints/FightcadeRank/internal/ui/styles"
)

func newDetailPanelModel(gameID string) detailPanelModel {
	return detailPanelModel{gameID: gameID}
}

// detailPanelModel renders the currently selected or most recently found
// player, including where the data came from.
type detailPanelModel struct {
	gameID string
	result fcrank.Result
	valid  bool
	width  int
}

func (m detailPanelModel) Init() tea.Cmd {
	return nil
}

func (m detailPanelModel) Update(msg tea.Msg) (detailPanelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contentViewPortHeightMsg:
		m.width = msg.width
	case SearchResultMsg:
		m.result = msg.Result
		m.valid = true
	case selectedEntryMsg:
		m.result = fcrank.Result{
			Player:    msg.entry.Player,
			Rank:      msg.entry.Rank,
			Tier:      rank.ForRank(msg.entry.Rank),
			FromCache: true,
			FetchedAt: msg.entry.FetchedAt,
		}
		m.valid = true
	}

	return m, nil
}

func (m detailPanelModel) Render(maxHeight int) string {
	if !m.valid {
		return styles.InfoMessage.Render("Search for a player to see details.")
	}

	stats := m.result.Player.Stats(m.gameID)

	rows := []string{
		styles.DetailRow("Player:", m.result.Player.Name),
		styles.DetailRow("Rank:", fmt.Sprintf("#%d", m.result.Rank)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			styles.PanelLabel.Render("Tier: "),
			styles.TierStyle(string(m.result.Tier)).Render(string(m.result.Tier))),
		styles.DetailRow("Country:", m.result.Player.Country.Code),
		styles.DetailRow("Matches:", fmt.Sprintf("%d (%d W / %d L)", stats.NumMatches, stats.Wins, stats.Losses)),
		styles.DetailRow("Time Played:", playTime(stats.TimePlayed)),
	}

	source := "live"
	if m.result.FromCache {
		source = fmt.Sprintf("cache, fetched %s", age(m.result.FetchedAt))
	}
	if m.result.Stale {
		source += " (stale)"
	}
	rows = append(rows, styles.DetailRow("Source:", source))

	if maxHeight > 0 && len(rows) > maxHeight {
		rows = rows[:maxHeight]
	}

	return lipgloss.JoinVertical(lipgloss.Top, rows...)
}
