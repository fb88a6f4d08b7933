package reward

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func claimedOn(daysAgo int, streak int) *Claimed {
	return &Claimed{
		Date:      DateOf(now.AddDate(0, 0, -daysAgo)),
		StreakDay: streak,
	}
}

func TestNextClaimFirstEver(t *testing.T) {
	next := NextClaim(nil, now)

	assert.Equal(t, 1, next.Day)
	assert.False(t, next.AlreadyClaimed)
	assert.Equal(t, 5, BaseXP(next.Day))
}

func TestNextClaimAlreadyClaimedToday(t *testing.T) {
	next := NextClaim(claimedOn(0, 3), now)

	assert.True(t, next.AlreadyClaimed)
	assert.Equal(t, 3, next.Day)
}

func TestNextClaimConsecutiveDays(t *testing.T) {
	for streak := 1; streak < CycleDays; streak++ {
		next := NextClaim(claimedOn(1, streak), now)
		assert.Equal(t, streak+1, next.Day, "streak %d 之后应领取第 %d 天", streak, streak+1)
		assert.False(t, next.AlreadyClaimed)
	}
}

func TestNextClaimCapsAtSeven(t *testing.T) {
	// 第 7 天之后继续连续签到，阶梯封顶不回绕
	next := NextClaim(claimedOn(1, 7), now)

	assert.Equal(t, CycleDays, next.Day)
}

func TestNextClaimResetsAfterGap(t *testing.T) {
	for _, gap := range []int{2, 3, 10, 365} {
		next := NextClaim(claimedOn(gap, 6), now)
		assert.Equal(t, 1, next.Day, "中断 %d 天后应重置", gap)
		assert.False(t, next.AlreadyClaimed)
	}
}

func TestBaseXPTable(t *testing.T) {
	expected := map[int]int{1: 5, 2: 10, 3: 15, 4: 20, 5: 25, 6: 30, 7: 50}
	for day, xp := range expected {
		assert.Equal(t, xp, BaseXP(day))
	}

	assert.Equal(t, 0, BaseXP(0))
	assert.Equal(t, 0, BaseXP(8))
}

func TestBonusXP(t *testing.T) {
	assert.Equal(t, 25, BonusXP(7), "完成一整周 +25")
	assert.Equal(t, 10, BonusXP(14), "7 的其他倍数 +10")
	assert.Equal(t, 10, BonusXP(21))

	for _, streak := range []int{0, 1, 2, 3, 4, 5, 6, 8} {
		assert.Equal(t, 0, BonusXP(streak))
	}
}

func TestTotalXPDaySeven(t *testing.T) {
	assert.Equal(t, 75, TotalXP(7), "第 7 天 = 50 基础 + 25 额外")
	assert.Equal(t, 5, TotalXP(1))
	assert.Equal(t, 30, TotalXP(6))
}

func TestLevelMath(t *testing.T) {
	assert.Equal(t, 1, LevelFor(0))
	assert.Equal(t, 1, LevelFor(499))
	assert.Equal(t, 2, LevelFor(500))
	assert.Equal(t, 3, LevelFor(1250))

	assert.Equal(t, 500, PointsToNextLevel(0))
	assert.Equal(t, 1, PointsToNextLevel(499))
	assert.Equal(t, 500, PointsToNextLevel(500))

	assert.InDelta(t, 0, LevelProgress(0), 0.001)
	assert.InDelta(t, 50, LevelProgress(250), 0.001)
	assert.InDelta(t, 50, LevelProgress(750), 0.001)
}

func TestLevelInvariantOverSequentialClaims(t *testing.T) {
	// 连续领取 N 天，total 应等于每日奖励之和，且等级公式始终成立
	total := 0
	day := 0
	var last *Claimed

	for i := 0; i < 20; i++ {
		at := now.AddDate(0, 0, i)
		next := NextClaim(last, at)
		assert.False(t, next.AlreadyClaimed)

		day = next.Day
		total += TotalXP(day)
		last = &Claimed{Date: DateOf(at), StreakDay: day}

		assert.Equal(t, total/LevelStep+1, LevelFor(total))
	}

	// 第 8 天起每天都停留在第 7 天档位
	assert.Equal(t, CycleDays, day)
}
