package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#e84545")

	HeaderContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)
	ContentContainerStyle = lipgloss.NewStyle().Align(lipgloss.Center)
	FooterContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(Black)
	NoStyle      = lipgloss.NewStyle()
	HelpStyle    = BlurredStyle

	FocusedSubmitButton = lipgloss.NewStyle().Foreground(Accent).Render("[ Submit ]")
	BlurredSubmitButton = fmt.Sprintf("[ %s ]", BlurredStyle.Render("Submit"))

	Black       = lipgloss.Color("#111111")
	Gray        = lipgloss.Color("#3e3e3e")
	GrayDark    = lipgloss.Color("#2f3030")
	GrayDarkAlt = lipgloss.Color("#0f0f0f")
	White       = lipgloss.Color("#cccccc")
	Whiter      = lipgloss.Color("#aaaaaa")

	Red  = lipgloss.Color("#B8383B")
	Blue = lipgloss.Color("#5885A2")

	// Tier colours, loosely after the site's rank badges.
	ColourTierS = lipgloss.Color("#ffd700")
	ColourTierA = lipgloss.Color("#8650ac")
	ColourTierB = lipgloss.Color("#476291")
	ColourTierC = lipgloss.Color("#4d7455")

	HeaderStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true).Align(lipgloss.Left).PaddingLeft(0)

	SelectedCellStyle     = lipgloss.NewStyle().Padding(0).Bold(true).Background(Accent).Foreground(Black)
	SelectedCellStyleName = lipgloss.NewStyle().Padding(0).Bold(true).Width(32).Background(Accent).Foreground(Black)

	TableRow     = lipgloss.NewStyle().Foreground(White)
	TableRowOdd  = lipgloss.NewStyle().Foreground(Whiter)
	TableRowSelf = lipgloss.NewStyle().Foreground(ColourTierC)

	PanelLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right).Width(16)
	PanelValue = lipgloss.NewStyle().Width(60)

	TabsInactive = lipgloss.NewStyle().Bold(true).
			Foreground(ColourTierB).PaddingLeft(2).PaddingRight(2)
	TabsActive = lipgloss.NewStyle().
			Foreground(ColourTierA).PaddingLeft(2).PaddingRight(2)

	StatusGame    = lipgloss.NewStyle().Foreground(ColourTierC).PaddingRight(2).PaddingLeft(1).Bold(true)
	StatusCache   = lipgloss.NewStyle().Foreground(Blue).Bold(true).PaddingLeft(1).PaddingRight(2)
	StatusError   = lipgloss.NewStyle().Foreground(Red).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusMessage = lipgloss.NewStyle().Foreground(ColourTierC).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusHelp    = lipgloss.NewStyle().Foreground(Gray).Bold(true).Align(lipgloss.Center)
	StatusVersion = lipgloss.NewStyle().Foreground(ColourTierC).Bold(true).Align(lipgloss.Center)

	InfoMessage = lipgloss.NewStyle().Align(lipgloss.Center).Padding(1)
	HelpBox     = lipgloss.NewStyle().Padding(3)
)

// TierStyle picks the badge colour for a tier label.
func TierStyle(tier string) lipgloss.Style {
	switch tier {
	case "S":
		return lipgloss.NewStyle().Foreground(ColourTierS).Bold(true)
	case "A":
		return lipgloss.NewStyle().Foreground(ColourTierA).Bold(true)
	case "B":
		return lipgloss.NewStyle().Foreground(ColourTierB)
	default:
		return lipgloss.NewStyle().Foreground(ColourTierC)
	}
}

func DetailRow(label string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelLabel.Render(label+" "),
		PanelValue.Render(value))
}

// WrapX will wrap a centered string with the supplied character up to the lenth specified.
func WrapX(width int, value string, character string) string {
	all := max(0, width-lipgloss.Width(value))
	return strings.Repeat(character, all/2) + value + strings.Repeat(character, all/2)
}
