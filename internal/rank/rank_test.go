package rank_test

import (
	"testing"

	"github.com/AndersSaints/FightcadeRank/internal/rank"
	"github.com/stretchr/testify/require"
)

func TestForRank(t *testing.T) {
	require.Equal(t, rank.TierS, rank.ForRank(1))
	require.Equal(t, rank.TierS, rank.ForRank(15))
	require.Equal(t, rank.TierA, rank.ForRank(16))
	require.Equal(t, rank.TierA, rank.ForRank(110))
	require.Equal(t, rank.TierB, rank.ForRank(111))
	require.Equal(t, rank.TierB, rank.ForRank(1250))
	require.Equal(t, rank.TierC, rank.ForRank(1251))
	require.Equal(t, rank.TierC, rank.ForRank(999999))

	require.Equal(t, rank.TierUnknown, rank.ForRank(0))
	require.Equal(t, rank.TierUnknown, rank.ForRank(-5))
}

func TestPageForRank(t *testing.T) {
	require.Equal(t, 1, rank.PageForRank(1, 15))
	require.Equal(t, 1, rank.PageForRank(15, 15))
	require.Equal(t, 2, rank.PageForRank(16, 15))
	require.Equal(t, 7, rank.PageForRank(100, 15))

	// Degenerate inputs clamp to the first page.
	require.Equal(t, 1, rank.PageForRank(0, 15))
	require.Equal(t, 1, rank.PageForRank(10, 0))
}

func TestPageForRankMonotonic(t *testing.T) {
	const pageSize = 15

	prev := 0
	for r := 1; r <= 5000; r++ {
		page := rank.PageForRank(r, pageSize)
		require.GreaterOrEqual(t, page, prev, "rank %d", r)
		prev = page
	}
}
