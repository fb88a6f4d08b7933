package repositories

import (
	"context"
	"errors"
	"testing"

	"arena/pkg/reward"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimFirstEver(t *testing.T) {
	repo := NewRewardRepository()
	ctx := context.Background()

	result, err := repo.Claim(ctx, 101, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Day)
	assert.Equal(t, 5, result.XpEarned)
	assert.Equal(t, 0, result.BonusXp)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, 5, result.TotalPoints)
	assert.Equal(t, 1, result.Level)
	assert.True(t, result.Persisted)
}

func TestClaimWrongDay(t *testing.T) {
	repo := NewRewardRepository()
	ctx := context.Background()

	// 没有任何签到历史时只能领第 1 天
	_, err := repo.Claim(ctx, 102, 3)
	require.Error(t, err)

	var wrongDay *WrongDayError
	require.True(t, errors.As(err, &wrongDay))
	assert.Equal(t, 1, wrongDay.Expected)
}

func TestClaimTwiceSameDay(t *testing.T) {
	repo := NewRewardRepository()
	ctx := context.Background()

	_, err := repo.Claim(ctx, 103, 1)
	require.NoError(t, err)

	// 同一天重复领取，不论请求哪一天都拒绝
	_, err = repo.Claim(ctx, 103, 1)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)

	_, err = repo.Claim(ctx, 103, 2)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestClaimWritesLedger(t *testing.T) {
	repo := NewRewardRepository()
	gamify := NewGamificationRepository()
	ctx := context.Background()

	result, err := repo.Claim(ctx, 104, 1)
	require.NoError(t, err)

	// XP 流水落了一笔，金额与领取结果一致
	history, err := repo.History(ctx, 104, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, result.XpEarned, history[0].Amount)
	assert.Equal(t, uint64(104), history[0].ProfileID)

	// 游戏化状态同步累加
	state, err := gamify.GetOrCreate(ctx, 104)
	require.NoError(t, err)
	assert.Equal(t, 5, state.TotalPoints)
	assert.Equal(t, 1, state.CurrentLevel)
	assert.Equal(t, 495, state.PointsToNextLevel)
}

func TestStatusWithoutHistory(t *testing.T) {
	repo := NewRewardRepository()
	ctx := context.Background()

	status, err := repo.Status(ctx, 105)
	require.NoError(t, err)

	assert.Equal(t, 1, status.NextDay)
	assert.False(t, status.AlreadyClaimed)
	assert.Equal(t, 0, status.Streak)
	require.Len(t, status.Rewards, reward.CycleDays)

	// 奖励表首尾额度
	assert.Equal(t, 5, status.Rewards[0].BaseXP)
	assert.Equal(t, 50, status.Rewards[6].BaseXP)
	assert.Equal(t, 25, status.Rewards[6].BonusXP)
}

func TestStatusAfterClaim(t *testing.T) {
	repo := NewRewardRepository()
	ctx := context.Background()

	_, err := repo.Claim(ctx, 106, 1)
	require.NoError(t, err)

	status, err := repo.Status(ctx, 106)
	require.NoError(t, err)

	assert.True(t, status.AlreadyClaimed)
	assert.Equal(t, 1, status.Streak)
	require.Len(t, status.History, 1)
	assert.Equal(t, 1, status.History[0].StreakDay)
}
