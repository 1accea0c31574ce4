package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/AndersSaints/FightcadeRank/internal/store"
	"github.com/AndersSaints/FightcadeRank/internal/ui/styles"
)

func newHistoryTableModel() *historyTableModel {
	return &historyTableModel{table: newUnstyledTable()}
}

// historyTableModel lists past lookups pulled from the sqlite store.
type historyTableModel struct {
	table    *table.Table
	searches []store.Search
	width    int
}

func (m *historyTableModel) Init() tea.Cmd {
	return nil
}

func (m *historyTableModel) Update(msg tea.Msg) (*historyTableModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contentViewPortHeightMsg:
		m.width = msg.width
		m.table.Width(msg.width - 4)
	case HistoryMsg:
		m.searches = msg.Searches
		m.table.Data(m)
	}

	return m, nil
}

func (m *historyTableModel) Headers() []string {
	return []string{"When", "Player", "Rank", "Tier", "Country", "Found"}
}

func (m *historyTableModel) At(row int, col int) string {
	if row > len(m.searches)-1 {
		return ""
	}

	search := m.searches[row]
	switch col {
	case 0:
		return age(search.SearchedOn)
	case 1:
		return search.Username
	case 2:
		if !search.Found {
			return "-"
		}

		return fmt.Sprintf("#%d", search.Rank)
	case 3:
		if !search.Found {
			return "-"
		}

		return search.Tier
	case 4:
		return search.Country
	case 5:
		if search.Found {
			return "yes"
		}

		return "no"
	default:
		return ""
	}
}

func (m *historyTableModel) Rows() int {
	return len(m.searches)
}

func (m *historyTableModel) Columns() int {
	return 6
}

func (m *historyTableModel) Render(maxHeight int) string {
	titleBar := renderTitleBar(m.width, "Search History")

	if len(m.searches) == 0 {
		return lipgloss.JoinVertical(lipgloss.Top, titleBar,
			styles.InfoMessage.Render("No lookups recorded yet."))
	}

	body := m.table.
		Headers(m.Headers()...).
		Height(min(maxHeight-1, len(m.searches)+1)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.HeaderStyle
			case col == 3 && row <= len(m.searches)-1:
				return styles.TierStyle(m.searches[row].Tier)
			case row%2 == 0:
				return styles.TableRow
			default:
				return styles.TableRowOdd
			}
		}).
		String()

	return lipgloss.JoinVertical(lipgloss.Top, titleBar, body)
}
