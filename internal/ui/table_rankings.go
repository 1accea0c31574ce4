package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	zone "github.com/lrstanley/bubblezone"

	"github.com/AndersSaints/FightcadeRank/internal/cache"
	"github.com/AndersSaints/FightcadeRank/internal/ui/styles"
)

// direction defines the cardinal directions the users can use in the UI.
type direction int

const (
	up direction = iota //nolint:varnamelen
	down
)

type requestPageMsg struct {
	page int
}

func requestPage(page int) tea.Cmd {
	return func() tea.Msg {
		return requestPageMsg{page: page}
	}
}

func newRankingsTableModel(gameID string, pageSize int) *rankingsTableModel {
	zoneID := zone.NewPrefix()

	pages := paginator.New()
	pages.Type = paginator.Arabic
	pages.PerPage = pageSize

	return &rankingsTableModel{
		id:        zoneID,
		gameID:    gameID,
		pageSize:  pageSize,
		page:      1,
		data:      newRankingsTableData(zoneID, gameID, nil),
		table:     newUnstyledTable(),
		paginator: pages,
	}
}

type rankingsTableModel struct {
	id           string
	gameID       string
	table        *table.Table
	data         *rankingsTableData
	paginator    paginator.Model
	pageSize     int
	page         int
	total        int
	selectedName string
	height       int
	width        int
}

func (m *rankingsTableModel) Init() tea.Cmd {
	return nil
}

func (m *rankingsTableModel) Update(msg tea.Msg) (*rankingsTableModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contentViewPortHeightMsg:
		m.width = msg.width
		m.height = msg.height
		m.table.Width(msg.width - 4)

		return m, nil
	case LeaderboardPageMsg:
		return m.updateEntries(msg)
	case SearchResultMsg:
		m.selectedName = msg.Result.Player.Name

		return m, nil
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}

		for _, item := range m.data.entries {
			if zone.Get(m.id + item.Player.Name).InBounds(msg) {
				m.selectedName = item.Player.Name

				return m, selectEntry(item)
			}
		}

		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeyMap.up):
			return m, m.moveSelection(up)
		case key.Matches(msg, defaultKeyMap.down):
			return m, m.moveSelection(down)
		case key.Matches(msg, defaultKeyMap.left):
			if m.page > 1 {
				return m, requestPage(m.page - 1)
			}
		case key.Matches(msg, defaultKeyMap.right):
			return m, requestPage(m.page + 1)
		}
	}

	return m, nil
}

func (m *rankingsTableModel) updateEntries(msg LeaderboardPageMsg) (*rankingsTableModel, tea.Cmd) {
	if len(msg.Entries) == 0 && msg.Page > 1 {
		// Walked off the end of the leaderboard, stay put.
		return m, setStatusMessage("No more ranked players", false)
	}

	m.page = msg.Page
	m.total = msg.Total
	m.data = newRankingsTableData(m.id, m.gameID, msg.Entries)
	m.table.Data(m.data)
	m.paginator.SetTotalPages(max(1, msg.Total))
	m.paginator.Page = m.page - 1

	var cmd tea.Cmd
	if _, ok := m.currentEntry(); !ok && len(msg.Entries) > 0 {
		m.selectedName = msg.Entries[0].Player.Name
		cmd = selectEntry(msg.Entries[0])
	}

	return m, cmd
}

func (m *rankingsTableModel) currentEntry() (cache.Entry, bool) {
	for _, entry := range m.data.entries {
		if entry.Player.EqualName(m.selectedName) {
			return entry, true
		}
	}

	return cache.Entry{}, false
}

func (m *rankingsTableModel) currentRowIndex() int {
	for rowIdx, entry := range m.data.entries {
		if entry.Player.EqualName(m.selectedName) {
			return rowIdx
		}
	}

	return -1
}

func (m *rankingsTableModel) moveSelection(dir direction) tea.Cmd {
	currentRow := m.currentRowIndex()
	switch dir {
	case up:
		if currentRow <= 0 {
			if len(m.data.entries) > 0 {
				m.selectedName = m.data.entries[len(m.data.entries)-1].Player.Name
			}

			break
		}
		m.selectedName = m.data.entries[currentRow-1].Player.Name
	case down:
		if currentRow < 0 || currentRow >= len(m.data.entries)-1 {
			if len(m.data.entries) > 0 {
				m.selectedName = m.data.entries[0].Player.Name
			}

			break
		}
		m.selectedName = m.data.entries[currentRow+1].Player.Name
	}

	if entry, ok := m.currentEntry(); ok {
		return selectEntry(entry)
	}

	return nil
}

func (m *rankingsTableModel) Render(maxHeight int) string {
	if len(m.data.entries) == 0 {
		return styles.InfoMessage.Render("No rankings loaded yet. Search for a player or press → to fetch the leaderboard.")
	}

	selectedRowIdx := m.currentRowIndex()

	body := m.table.
		Headers(m.data.Headers()...).
		Height(min(maxHeight-1, len(m.data.entries)+1)).
		StyleFunc(func(row, col int) lipgloss.Style {
			width := colNameSize
			switch m.data.enabledColumns[col] {
			case colRank:
				width = colRankSize
			case colTier:
				width = colTierSize
			case colName:
				width = colNameSize
			case colCountry:
				width = colCountrySize
			case colMatches:
				width = colMatchesSize
			case colWins:
				width = colWinsSize
			case colLosses:
				width = colLossesSize
			case colTime:
				width = colTimeSize
			}

			switch {
			case row == table.HeaderRow:
				return styles.HeaderStyle.Width(int(width))
			case row == selectedRowIdx:
				if m.data.enabledColumns[col] == colName {
					return styles.SelectedCellStyleName.Width(int(width))
				}

				return styles.SelectedCellStyle.Width(int(width))
			case m.data.enabledColumns[col] == colTier:
				return styles.TierStyle(m.data.At(row, col)).Width(int(width))
			case row%2 == 0:
				return styles.TableRow.Width(int(width))
			default:
				return styles.TableRowOdd.Width(int(width))
			}
		}).
		String()

	footer := styles.StatusHelp.Render("Page ") + m.paginator.View()

	return lipgloss.JoinVertical(lipgloss.Top, body, footer)
}
