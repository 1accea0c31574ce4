package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AndersSaints/FightcadeRank/internal/ui/styles"
)

type searchSubmittedMsg struct {
	username string
}

func submitSearch(username string) tea.Cmd {
	return func() tea.Msg {
		return searchSubmittedMsg{username: username}
	}
}

func newSearchModel() *searchModel {
	input := newTextInputModel("", "Enter player name...")
	input.Prompt = "Search: "
	input.PromptStyle = styles.FocusedStyle

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	model := &searchModel{input: input, spin: spin}
	model.input.Focus()

	return model
}

type searchModel struct {
	input     textinput.Model
	spin      spinner.Model
	searching bool
	progress  string
	width     int
}

func (m *searchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *searchModel) Update(msg tea.Msg) (*searchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contentViewPortHeightMsg:
		m.width = msg.width

		return m, nil
	case SearchProgressMsg:
		m.progress = msg.Message

		return m, nil
	case SearchResultMsg:
		m.searching = false
		m.progress = ""

		return m, nil
	case SearchErrorMsg:
		m.searching = false
		m.progress = ""

		return m, nil
	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}

		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)

		return m, cmd
	case tea.KeyMsg:
		if !m.input.Focused() {
			if key.Matches(msg, defaultKeyMap.search) {
				return m, m.input.Focus()
			}

			return m, nil
		}

		switch {
		case key.Matches(msg, defaultKeyMap.back):
			m.input.Blur()

			return m, nil
		case key.Matches(msg, defaultKeyMap.accept):
			username := strings.TrimSpace(m.input.Value())
			if username == "" {
				return m, setStatusMessage("Please enter a username", true)
			}
			if m.searching {
				return m, setStatusMessage("Search already running", true)
			}

			m.searching = true
			m.progress = "Starting search..."

			return m, tea.Batch(submitSearch(username), m.spin.Tick)
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *searchModel) View() string {
	parts := []string{m.input.View()}
	if m.searching {
		parts = append(parts, " "+m.spin.View())
	}
	if m.progress != "" {
		parts = append(parts, styles.StatusMessage.Render(m.progress))
	}

	return lipgloss.NewStyle().Width(m.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}
