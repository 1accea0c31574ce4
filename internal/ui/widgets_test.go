package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestRenderTitleBar(t *testing.T) {
	bar := renderTitleBar(40, "Replay Stats")
	require.Contains(t, bar, "Replay Stats")
	require.Contains(t, bar, "─")
	require.Equal(t, 38, lipgloss.Width(bar))

	// Widths narrower than the title keep the title and drop the padding.
	tiny := renderTitleBar(4, "Search History")
	require.Contains(t, tiny, "Search History")
}
