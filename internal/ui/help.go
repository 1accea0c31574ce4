package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/AndersSaints/FightcadeRank/internal/ui/styles"
)

const helpIntro = `fcrank looks up a player's position on the global Fightcade leaderboard. ` +
	`Results are cached on disk, repeated lookups inside the cache window are answered ` +
	`locally. Rankings are walked page by page, deep searches can take a while because ` +
	`the API rate limits aggressive clients.`

func newHelpModel(buildVersion string, buildDate string, buildCommit string, configPath string, cachePath string) helpModel {
	return helpModel{
		configPath:   configPath,
		cachePath:    cachePath,
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

type helpModel struct {
	configPath   string
	cachePath    string
	buildVersion string
	buildDate    string
	buildCommit  string
	width        int
}

func (m helpModel) Init() tea.Cmd {
	return nil
}

func (m helpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contentViewPortHeightMsg:
		m.width = msg.width
	case tea.KeyMsg:
		if key.Matches(msg, defaultKeyMap.back) {
			return m, setContentView(viewMain)
		}
	}

	return m, nil
}

func (m helpModel) View() string {
	bindings := []struct {
		binding key.Binding
	}{
		{defaultKeyMap.search},
		{defaultKeyMap.accept},
		{defaultKeyMap.nextTab},
		{defaultKeyMap.left},
		{defaultKeyMap.right},
		{defaultKeyMap.refresh},
		{defaultKeyMap.clearCache},
		{defaultKeyMap.config},
		{defaultKeyMap.help},
		{defaultKeyMap.quit},
	}

	rows := []string{
		wordwrap.String(helpIntro, max(40, m.width-10)),
		"",
	}

	for _, item := range bindings {
		help := item.binding.Help()
		rows = append(rows, styles.DetailRow(help.Key, help.Desc))
	}

	rows = append(rows,
		"",
		styles.DetailRow("Version:", fmt.Sprintf("%s (%s) %s", m.buildVersion, m.buildCommit, m.buildDate)),
		styles.DetailRow("Config:", m.configPath),
		styles.DetailRow("Cache:", m.cachePath),
	)

	return styles.HelpBox.Render(lipgloss.JoinVertical(lipgloss.Top, rows...))
}
