// Package rank maps absolute leaderboard positions to coarse tier labels and
// to the remote page that contains them.
package rank

import "math"

// Tier is a coarse bucket derived from a player's position on the global
// leaderboard, not from their in-game elo grade.
type Tier string

const (
	TierS       Tier = "S"
	TierA       Tier = "A"
	TierB       Tier = "B"
	TierC       Tier = "C"
	TierUnknown Tier = "?"
)

// thresholds is ordered by upper rank bound, the first bound >= rank wins.
var thresholds = []struct {
	upper int
	tier  Tier
}{
	{15, TierS},
	{110, TierA},
	{1250, TierB},
	{math.MaxInt, TierC},
}

// ForRank returns the tier for a 1-based global rank.
func ForRank(rank int) Tier {
	if rank <= 0 {
		return TierUnknown
	}

	for _, threshold := range thresholds {
		if rank <= threshold.upper {
			return threshold.tier
		}
	}

	return TierC
}

// PageForRank returns the 1-based remote page holding the given rank, plain
// ceiling division.
func PageForRank(rank int, pageSize int) int {
	if rank <= 0 || pageSize <= 0 {
		return 1
	}

	return (rank + pageSize - 1) / pageSize
}
