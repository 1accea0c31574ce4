package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/AndersSaints/FightcadeRank/internal/ui/styles"
)

type tabView int

const (
	tabRankings tabView = iota
	tabReplays
	tabHistory
)

func setTab(tab tabView) tea.Cmd {
	return func() tea.Msg {
		return tab
	}
}

type tabLabel struct {
	label string
	tab   tabView
}

func newTabsModel() tea.Model {
	return &tabsModel{
		id: zone.NewPrefix(),
		tabs: []tabLabel{
			{label: "Rankings", tab: tabRankings},
			{label: "Replays", tab: tabReplays},
			{label: "History", tab: tabHistory},
		},
		selectedTab: tabRankings,
	}
}

type tabsModel struct {
	tabs        []tabLabel
	selectedTab tabView
	width       int
	id          string
}

func (m tabsModel) Init() tea.Cmd {
	return nil
}

func (m tabsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	changed := false
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for _, item := range m.tabs {
			// Check each item to see if it's in bounds.
			if zone.Get(m.id + item.label).InBounds(msg) {
				m.selectedTab = item.tab

				return m, setTab(m.selectedTab)
			}
		}

		return m, nil
	case contentViewPortHeightMsg:
		m.width = msg.width

		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeyMap.nextTab):
			m.selectedTab++
			if m.selectedTab > tabHistory {
				m.selectedTab = tabRankings
			}
			changed = true
		case key.Matches(msg, defaultKeyMap.prevTab):
			m.selectedTab--
			if m.selectedTab < tabRankings {
				m.selectedTab = tabHistory
			}
			changed = true
		}
	}

	if changed {
		return m, setTab(m.selectedTab)
	}

	return m, nil
}

func (m tabsModel) View() string {
	if m.width == 0 {
		return ""
	}

	var tabs []string
	for _, tab := range m.tabs {
		if tab.tab == m.selectedTab {
			tabs = append(tabs, zone.Mark(m.id+tab.label, styles.TabsActive.Render(tab.label)))
		} else {
			tabs = append(tabs, zone.Mark(m.id+tab.label, styles.TabsInactive.Render(tab.label)))
		}
	}

	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}
