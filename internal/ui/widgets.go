package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/AndersSaints/FightcadeRank/internal/ui/styles"
)

func newTextInputModel(value string, placeholder string) textinput.Model {
	input := textinput.New()
	input.SetValue(value)
	input.CharLimit = 127
	input.Placeholder = placeholder
	input.PromptStyle = styles.NoStyle

	return input
}

func renderTitleBar(width int, value string) string {
	return lipgloss.
		NewStyle().
		Bold(false).
		Background(styles.Black).
		Foreground(styles.Accent).
		Render(styles.WrapX(max(0, width-2), " "+value+" ", "─"))
}

func newUnstyledTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderHeader(false).
		Headers(headers...)
}
