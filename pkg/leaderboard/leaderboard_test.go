package leaderboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(xps ...int) []Entry {
	list := make([]Entry, len(xps))
	for i, xp := range xps {
		list[i] = Entry{
			ProfileID: uint64(i + 1),
			Name:      fmt.Sprintf("user-%d", i+1),
			XP:        xp,
		}
	}
	return list
}

func TestRankOrdering(t *testing.T) {
	board := Rank(entries(50, 300, 120, 0, 900), 0, false)

	require.Len(t, board.Entries, 5)
	// XP 降序且名次逐一递增
	for i, e := range board.Entries {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, board.Entries[i-1].XP, e.XP)
		}
	}
	assert.Equal(t, 900, board.Entries[0].XP)
	assert.Equal(t, 0, board.Entries[4].XP)
}

func TestRankStableTies(t *testing.T) {
	board := Rank(entries(100, 100, 100), 0, false)

	// 同分保持输入顺序
	assert.Equal(t, uint64(1), board.Entries[0].ProfileID)
	assert.Equal(t, uint64(2), board.Entries[1].ProfileID)
	assert.Equal(t, uint64(3), board.Entries[2].ProfileID)
}

func TestRankDropsZeroXPUnderTimeFilter(t *testing.T) {
	board := Rank(entries(10, 0, 20, 0), 0, true)

	require.Len(t, board.Entries, 2)
	assert.Equal(t, 2, board.Total)
	for _, e := range board.Entries {
		assert.Greater(t, e.XP, 0)
	}
}

func TestRankTruncatesToTopLimit(t *testing.T) {
	xps := make([]int, 150)
	for i := range xps {
		xps[i] = 1000 - i
	}
	board := Rank(entries(xps...), 0, false)

	assert.Len(t, board.Entries, TopLimit)
	assert.Equal(t, 150, board.Total)
}

func TestCallerStatsOutsideTop100(t *testing.T) {
	xps := make([]int, 150)
	for i := range xps {
		xps[i] = 1000 - i
	}
	list := entries(xps...)
	// 第 120 位的用户
	callerID := list[119].ProfileID

	board := Rank(list, callerID, false)

	require.NotNil(t, board.Caller)
	assert.Equal(t, 120, board.Caller.Rank)
	assert.Equal(t, 1000-119, board.Caller.XP)
	assert.Equal(t, 1, board.Caller.GapToNext)
	assert.InDelta(t, float64(150-120)/150*100, board.Caller.Percentile, 0.001)
}

func TestCallerAtTopHasNoGap(t *testing.T) {
	board := Rank(entries(10, 500), 2, false)

	require.NotNil(t, board.Caller)
	assert.Equal(t, 1, board.Caller.Rank)
	assert.Equal(t, 0, board.Caller.GapToNext)
}

func TestCallerMissing(t *testing.T) {
	board := Rank(entries(10, 20), 99, false)

	assert.Nil(t, board.Caller)
}
