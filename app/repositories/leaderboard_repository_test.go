package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"arena/app/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedRankedProfile 建档并直接写入累计 XP
func seedRankedProfile(t *testing.T, circleID int64, name string, points int) *user.UserProfile {
	t.Helper()

	users := NewUserRepository()
	gamify := NewGamificationRepository()
	ctx := context.Background()

	profile := &user.UserProfile{
		CircleID: circleID,
		Email:    fmt.Sprintf("rank-%d@example.com", circleID),
		Name:     name,
	}
	require.NoError(t, users.Create(ctx, profile))

	state, err := gamify.GetOrCreate(ctx, profile.ID)
	require.NoError(t, err)
	state.AddPoints(points)
	require.NoError(t, gamify.Save(ctx, state))

	return profile
}

func TestLeaderboardGlobalOrdering(t *testing.T) {
	alice := seedRankedProfile(t, 8101, "Alice", 300)
	bob := seedRankedProfile(t, 8102, "Bob", 700)
	carol := seedRankedProfile(t, 8103, "Carol", 100)

	boards := NewLeaderboardRepository()
	result, err := boards.Compute(context.Background(), FilterGlobal, alice)
	require.NoError(t, err)

	// 结果按 XP 降序，名次从 1 开始
	require.GreaterOrEqual(t, len(result.Entries), 3)
	positions := map[uint64]int{}
	for _, entry := range result.Entries {
		positions[entry.ProfileID] = entry.Rank
	}
	assert.Less(t, positions[bob.ID], positions[alice.ID])
	assert.Less(t, positions[alice.ID], positions[carol.ID])

	// 调用者自己的名次信息
	require.NotNil(t, result.Caller)
	assert.Equal(t, positions[alice.ID], result.Caller.Rank)
	assert.Equal(t, 300, result.Caller.XP)
}

func TestLeaderboardWeekIncludesFreshClaims(t *testing.T) {
	profile := seedRankedProfile(t, 8104, "Fresh", 0)

	// 本周流水来自刚刚的领取
	_, err := NewRewardRepository().Claim(context.Background(), profile.ID, 1)
	require.NoError(t, err)

	result, err := NewLeaderboardRepository().Compute(context.Background(), FilterWeek, profile)
	require.NoError(t, err)

	found := false
	for _, entry := range result.Entries {
		if entry.ProfileID == profile.ID {
			found = true
			assert.Equal(t, 5, entry.XP)
		}
	}
	assert.True(t, found, "本周领取过奖励的用户应出现在周榜")
}

func TestLeaderboardWeekDropsZeroXP(t *testing.T) {
	idle := seedRankedProfile(t, 8105, "Idle", 900)

	// 累计 XP 很高但本周没有流水，周榜不应出现
	result, err := NewLeaderboardRepository().Compute(context.Background(), FilterWeek, nil)
	require.NoError(t, err)

	for _, entry := range result.Entries {
		assert.NotEqual(t, idle.ID, entry.ProfileID)
	}
}

func TestLeaderboardLevelFilter(t *testing.T) {
	low := seedRankedProfile(t, 8106, "LowLevel", 100)   // Level 1
	high := seedRankedProfile(t, 8107, "HighLevel", 600) // Level 2

	result, err := NewLeaderboardRepository().Compute(context.Background(), FilterLevel, low)
	require.NoError(t, err)

	for _, entry := range result.Entries {
		assert.Equal(t, 1, entry.Level)
		assert.NotEqual(t, high.ID, entry.ProfileID)
	}
}

func TestStartOfWeekIsMonday(t *testing.T) {
	// 2026-08-30 是周日，应归入 8-24（周一）起算的那一周
	sunday := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	start := startOfWeek(sunday)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, 24, start.Day())

	monday := time.Date(2026, 8, 31, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, 31, startOfWeek(monday).Day())
}
