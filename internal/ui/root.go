package ui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/AndersSaints/FightcadeRank/internal/config"
	"github.com/AndersSaints/FightcadeRank/internal/ui/styles"
)

// detailPanelHeight is the fixed number of rows reserved below the rankings table.
const detailPanelHeight = 9

// rootModel is the top level model for the ui side of the app.
type rootModel struct {
	currentView        contentView
	previousView       contentView
	height             int
	width              int
	activeTab          tabView
	searchModel        *searchModel
	rankingsTableModel *rankingsTableModel
	replaysModel       replaysModel
	historyTableModel  *historyTableModel
	detailPanelModel   detailPanelModel
	configModel        tea.Model
	helpModel          tea.Model
	tabsModel          tea.Model
	statusModel        tea.Model
	footerHeight       int
	headerHeight       int
	parentContextChan  chan any
}

func newRootModel(userConfig config.Config, doSetup bool, buildVersion string, buildDate string, buildCommit string, loader ConfigWriter, cachePath string, parentChan chan any) *rootModel {
	app := &rootModel{
		parentContextChan:  parentChan,
		currentView:        viewMain,
		previousView:       viewMain,
		activeTab:          tabRankings,
		searchModel:        newSearchModel(),
		rankingsTableModel: newRankingsTableModel(userConfig.GameID, userConfig.PageSize),
		replaysModel:       newReplaysModel(),
		historyTableModel:  newHistoryTableModel(),
		detailPanelModel:   newDetailPanelModel(userConfig.GameID),
		configModel:        newConfigModel(userConfig, loader),
		helpModel:          newHelpModel(buildVersion, buildDate, buildCommit, loader.Path(), cachePath),
		tabsModel:          newTabsModel(),
		statusModel:        newStatusBarModel(buildVersion, userConfig.GameID),
		headerHeight:       2,
		footerHeight:       1,
	}

	if doSetup {
		app.currentView = viewConfig
	}

	return app
}

func (m rootModel) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("fcrank"),
		textinput.Blink,
		m.searchModel.Init(),
		m.configModel.Init(),
		m.tabsModel.Init(),
		m.statusModel.Init(),
	)
}

func (m rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	if !m.isInitialized() {
		if _, ok := inMsg.(tea.WindowSizeMsg); !ok {
			return m, nil
		}
	}

	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width
		contentViewPortHeight := m.height - m.headerHeight - m.footerHeight

		return m, setContentViewPortHeight(contentViewPortHeight, m.width)
	case tabView:
		m.activeTab = msg
	case searchSubmittedMsg:
		m.parentContextChan <- SearchRequest{Username: msg.username}
	case requestPageMsg:
		m.parentContextChan <- PageRequest{Page: msg.page}
	case requestReplaysMsg:
		m.parentContextChan <- ReplayStatsRequest{Username: msg.username}
	case config.Config:
		m.parentContextChan <- msg
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeyMap.quit):
			if m.currentView != viewMain || m.searchModel.input.Focused() {
				break
			}

			return m, tea.Quit
		case key.Matches(msg, defaultKeyMap.help):
			if m.searchModel.input.Focused() {
				break
			}
			if m.currentView == viewHelp {
				m.currentView = m.previousView
			} else {
				m.previousView = m.currentView
				m.currentView = viewHelp
			}
		case key.Matches(msg, defaultKeyMap.config):
			if m.searchModel.input.Focused() {
				break
			}
			if m.currentView == viewConfig {
				m.currentView = m.previousView
			} else {
				m.previousView = m.currentView
				m.currentView = viewConfig

				return m.propagate(setContentView(viewConfig)())
			}
		case key.Matches(msg, defaultKeyMap.clearCache):
			m.parentContextChan <- ClearCacheRequest{}

			return m, setStatusMessage("Cache cleared", false)
		}

		// While the search input is focused, keystrokes belong to it alone so
		// table navigation does not fire while typing a name.
		if m.currentView == viewMain && m.searchModel.input.Focused() {
			var cmd tea.Cmd
			m.searchModel, cmd = m.searchModel.Update(inMsg)

			return m, cmd
		}
	case contentView:
		m.currentView = msg
	}

	return m.propagate(inMsg)
}

func (m rootModel) View() string {
	footer := styles.FooterContainerStyle.Width(m.width).Render(m.statusModel.View())
	header := styles.HeaderContainerStyle.Width(m.width).Render(m.tabsModel.View())
	_, hdrHeight := lipgloss.Size(header)
	_, ftrHeight := lipgloss.Size(footer)

	contentViewPortHeight := m.height - hdrHeight - ftrHeight

	var content string
	switch m.currentView {
	case viewConfig:
		content = m.configModel.View()
	case viewHelp:
		content = m.helpModel.View()
	case viewMain:
		searchRow := m.searchModel.View()
		panelHeight := contentViewPortHeight - lipgloss.Height(searchRow) - 1

		var tabContent string
		switch m.activeTab {
		case tabRankings:
			tableHeight := panelHeight - detailPanelHeight
			tabContent = lipgloss.JoinVertical(lipgloss.Top,
				m.rankingsTableModel.Render(tableHeight),
				m.detailPanelModel.Render(detailPanelHeight))
		case tabReplays:
			tabContent = m.replaysModel.Render(panelHeight)
		case tabHistory:
			tabContent = m.historyTableModel.Render(panelHeight)
		}

		content = lipgloss.JoinVertical(lipgloss.Top, searchRow, "", tabContent)
	}

	ctr := styles.ContentContainerStyle.Height(contentViewPortHeight).Render(content)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, ctr, footer))
}

func (m rootModel) isInitialized() bool {
	return m.height != 0 && m.width != 0
}

func (m rootModel) propagate(msg tea.Msg, _ ...tea.Cmd) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 9)

	m.searchModel, cmds[0] = m.searchModel.Update(msg)
	m.rankingsTableModel, cmds[1] = m.rankingsTableModel.Update(msg)
	m.replaysModel, cmds[2] = m.replaysModel.Update(msg)
	m.historyTableModel, cmds[3] = m.historyTableModel.Update(msg)
	m.detailPanelModel, cmds[4] = m.detailPanelModel.Update(msg)
	m.tabsModel, cmds[5] = m.tabsModel.Update(msg)
	m.statusModel, cmds[6] = m.statusModel.Update(msg)
	m.configModel, cmds[7] = m.configModel.Update(msg)
	m.helpModel, cmds[8] = m.helpModel.Update(msg)

	return m, tea.Batch(cmds...)
}

// logMsg is useful for debugging events. Tail the log file under the config dir.
func logMsg(inMsg tea.Msg) {
	// Filter out very noisy stuff
	switch inMsg.(type) {
	case spinner.TickMsg:
	case LeaderboardPageMsg:
		break
	case CacheStatsMsg:
		break
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}
