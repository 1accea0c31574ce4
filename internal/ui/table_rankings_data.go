package ui

import (
	"fmt"
	"strings"

	zone "github.com/lrstanley/bubblezone"
	"golang.org/x/exp/slices"

	"github.com/AndersSaints/FightcadeRank/internal/cache"
	"github.com/AndersSaints/FightcadeRank/internal/rank"
)

// rankingsTableCol defines all available columns for the rankings table.
type rankingsTableCol int

const (
	colRank rankingsTableCol = iota
	colTier
	colName
	colCountry
	colMatches
	colWins
	colLosses
	colTime
)

// rankingsTableColSize defines the rendered widths of the columns.
type rankingsTableColSize int

const (
	colRankSize    rankingsTableColSize = 6
	colTierSize    rankingsTableColSize = 5
	colNameSize    rankingsTableColSize = 0
	colCountrySize rankingsTableColSize = 8
	colMatchesSize rankingsTableColSize = 9
	colWinsSize    rankingsTableColSize = 7
	colLossesSize  rankingsTableColSize = 7
	colTimeSize    rankingsTableColSize = 12
)

func newRankingsTableData(parentZoneID string, gameID string, entries []cache.Entry, cols ...rankingsTableCol) *rankingsTableData {
	data := rankingsTableData{
		zoneID:  parentZoneID,
		gameID:  gameID,
		entries: entries,
		enabledColumns: []rankingsTableCol{
			colRank, colTier, colName, colCountry, colMatches, colWins, colLosses, colTime,
		},
	}

	if len(cols) > 0 {
		data.enabledColumns = cols
	}

	slices.SortStableFunc(data.entries, func(a, b cache.Entry) int {
		return a.Rank - b.Rank
	})

	return &data
}

// rankingsTableData implements the table.Data interface to provide table data.
type rankingsTableData struct {
	entries []cache.Entry
	zoneID  string
	gameID  string
	// Defines both the columns shown and the order they are rendered.
	enabledColumns []rankingsTableCol
}

func (m *rankingsTableData) Headers() []string {
	var headers []string
	for _, col := range m.enabledColumns {
		switch col {
		case colRank:
			headers = append(headers, zone.Mark(m.zoneID+"rank", "Rank"))
		case colTier:
			headers = append(headers, zone.Mark(m.zoneID+"tier", "Tier"))
		case colName:
			headers = append(headers, zone.Mark(m.zoneID+"name", "Player"))
		case colCountry:
			headers = append(headers, zone.Mark(m.zoneID+"country", "Country"))
		case colMatches:
			headers = append(headers, zone.Mark(m.zoneID+"matches", "Matches"))
		case colWins:
			headers = append(headers, zone.Mark(m.zoneID+"wins", "Wins"))
		case colLosses:
			headers = append(headers, zone.Mark(m.zoneID+"losses", "Losses"))
		case colTime:
			headers = append(headers, zone.Mark(m.zoneID+"time", "Time Played"))
		}
	}

	return headers
}

func (m *rankingsTableData) At(row int, col int) string {
	if col > len(m.enabledColumns)-1 || row > len(m.entries)-1 {
		return ""
	}

	entry := m.entries[row]
	stats := entry.Player.Stats(m.gameID)

	switch m.enabledColumns[col] {
	case colRank:
		return fmt.Sprintf("%d", entry.Rank)
	case colTier:
		return string(rank.ForRank(entry.Rank))
	case colName:
		name := entry.Player.Name
		if name == "" {
			name = "<unknown>"
		}

		return zone.Mark(m.zoneID+entry.Player.Name, name)
	case colCountry:
		return strings.ToUpper(entry.Player.Country.Code)
	case colMatches:
		return fmt.Sprintf("%d", stats.NumMatches)
	case colWins:
		return fmt.Sprintf("%d", stats.Wins)
	case colLosses:
		return fmt.Sprintf("%d", stats.Losses)
	case colTime:
		return playTime(stats.TimePlayed)
	default:
		return ""
	}
}

func (m *rankingsTableData) Rows() int {
	return len(m.entries)
}

func (m *rankingsTableData) Columns() int {
	return len(m.enabledColumns)
}
