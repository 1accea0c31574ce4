package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AndersSaints/FightcadeRank/internal/config"
	"github.com/AndersSaints/FightcadeRank/internal/ui/styles"
)

type configIdx int

const (
	fieldGameID configIdx = iota
	fieldAPIBaseURL
	fieldPageSize
	fieldCacheTTL
	fieldSave
)

type ConfigWriter interface {
	Write(config.Config) error
	Path() string
}

type configModel struct {
	fields     []*validatingTextInputModel
	focusIndex configIdx
	config     config.Config
	activeView contentView
	width      int
	height     int
	loader     ConfigWriter
}

func newConfigModel(conf config.Config, loader ConfigWriter) tea.Model {
	return &configModel{
		config: conf,
		fields: []*validatingTextInputModel{
			newValidatingTextInputModel("Game ID", conf.GameID, config.DefaultGameID, notEmptyValidator{}),
			newValidatingTextInputModel("API Base URL", conf.APIBaseURL, "", urlValidator{}),
			newValidatingTextInputModel("Page Size", strconv.Itoa(conf.PageSize), "", positiveIntValidator{}),
			newValidatingTextInputModel("Cache TTL (seconds)", strconv.Itoa(conf.CacheTTLSecs), "", positiveIntValidator{}),
		},
		activeView: viewConfig,
		focusIndex: fieldGameID,
		loader:     loader,
	}
}

func (m *configModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return m.config
	})
}

func (m *configModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.fields))

	for i := range m.fields {
		m.fields[i], cmds[i] = m.fields[i].Update(msg)
	}

	switch msg := msg.(type) {
	case contentView:
		m.activeView = msg
		if m.activeView == viewConfig {
			m.focusIndex = fieldGameID
			cmds = append(cmds, m.fields[fieldGameID].focus()) //nolint:makezero
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if m.activeView != viewConfig {
			break
		}
		switch {
		case key.Matches(msg, defaultKeyMap.back):
			m.activeView = viewMain
			cmds = append(cmds, setContentView(viewMain)) //nolint:makezero
		case key.Matches(msg, defaultKeyMap.up):
			if m.focusIndex > 0 && m.focusIndex <= fieldSave {
				cmds = append(cmds, m.changeInput(up)) //nolint:makezero
			}
		case key.Matches(msg, defaultKeyMap.down):
			if m.focusIndex >= 0 && m.focusIndex < fieldSave {
				cmds = append(cmds, m.changeInput(down)) //nolint:makezero
			}
		case key.Matches(msg, defaultKeyMap.accept):
			if m.focusIndex != fieldSave {
				cmds = append(cmds, m.changeInput(down)) //nolint:makezero

				break
			}

			for _, field := range m.fields {
				if field.input.Err != nil {
					return m, setStatusMessage("Config is not valid, cannot save", true)
				}
			}

			cfg := m.config
			cfg.GameID = m.fields[fieldGameID].input.Value()
			cfg.APIBaseURL = m.fields[fieldAPIBaseURL].input.Value()
			cfg.PageSize, _ = strconv.Atoi(m.fields[fieldPageSize].input.Value())
			cfg.CacheTTLSecs, _ = strconv.Atoi(m.fields[fieldCacheTTL].input.Value())

			if err := m.loader.Write(cfg); err != nil {
				return m, setStatusMessage(err.Error(), true)
			}

			m.config = cfg

			return m, tea.Batch(
				setConfig(cfg),
				setStatusMessage("Saved config", false),
				setContentView(viewMain))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *configModel) changeInput(direction direction) tea.Cmd {
	switch direction { //nolint:exhaustive
	case up:
		m.focusIndex--
	case down:
		m.focusIndex++
	default:
		return nil
	}

	var cmd tea.Cmd
	for i := range m.fields {
		if configIdx(i) == m.focusIndex {
			cmd = m.fields[i].focus()
		} else {
			m.fields[i].blur()
		}
	}

	return cmd
}

func (m *configModel) View() string {
	fields := make([]string, 0, len(m.fields)+1)
	for _, field := range m.fields {
		fields = append(fields, field.View())
	}

	if m.focusIndex == fieldSave {
		fields = append(fields, styles.FocusedSubmitButton)
	} else {
		fields = append(fields, styles.BlurredSubmitButton)
	}

	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Left).
		Render(lipgloss.JoinVertical(lipgloss.Top, fields...))
}
