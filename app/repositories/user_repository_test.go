package repositories

import (
	"context"
	"testing"

	"arena/app/models/user"
	"arena/pkg/circle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertThenFetchRoundTrip(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	profile := &user.UserProfile{
		CircleID: 9001,
		Email:    "roundtrip@example.com",
		Name:     "Round Trip",
		Headline: "hello",
	}
	require.NoError(t, repo.UpsertByCircleID(ctx, profile))

	stored, err := repo.GetByEmail(ctx, "roundtrip@example.com")
	require.NoError(t, err)
	assert.NotZero(t, stored.ID)
	assert.Equal(t, int64(9001), stored.CircleID)
	assert.Equal(t, "Round Trip", stored.Name)
	assert.Equal(t, "hello", stored.Headline)

	// 二次 upsert 同一个 CircleID，更新字段而不新建行
	again := &user.UserProfile{
		CircleID: 9001,
		Email:    "roundtrip@example.com",
		Name:     "Renamed",
	}
	require.NoError(t, repo.UpsertByCircleID(ctx, again))

	updated, err := repo.GetByEmail(ctx, "roundtrip@example.com")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestGetByEmailNotFound(t *testing.T) {
	repo := NewUserRepository()

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestLazyGamificationCreation(t *testing.T) {
	gamify := NewGamificationRepository()
	ctx := context.Background()

	// 首次读取即创建，Level 1 起步
	state, err := gamify.GetOrCreate(ctx, 201)
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentLevel)
	assert.Equal(t, 0, state.TotalPoints)
	assert.Equal(t, 500, state.PointsToNextLevel)

	// 再次读取拿到同一行
	same, err := gamify.GetOrCreate(ctx, 201)
	require.NoError(t, err)
	assert.Equal(t, state.ID, same.ID)
}

func TestSyncFromMember(t *testing.T) {
	engagement := NewEngagementRepository()
	ctx := context.Background()

	member := &circle.Member{
		ID:            9100,
		Email:         "sync@example.com",
		Name:          "Sync Target",
		PostsCount:    12,
		CommentsCount: 34,
		ActivityScore: circle.ActivityScore{Total: 87.5},
		Tags: []circle.MemberTag{
			{ID: 1, Name: "Top Contributor"},
		},
		Spaces: []circle.MemberSpace{
			{ID: 7, Name: "General"},
		},
	}

	require.NoError(t, engagement.SyncFromMember(ctx, 301, member))

	record, err := engagement.GetOrCreateActivity(ctx, 301)
	require.NoError(t, err)
	assert.Equal(t, 12, record.PostsCount)
	assert.Equal(t, 34, record.CommentsCount)
	assert.Equal(t, 87.5, record.ActivityScore)

	badges, err := engagement.ListBadges(ctx, 301)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "Top Contributor", badges[0].Name)

	spaces, err := engagement.ListSpaces(ctx, 301)
	require.NoError(t, err)
	require.Len(t, spaces, 1)
	assert.Equal(t, "General", spaces[0].Name)

	// 重复同步不产生重复行
	require.NoError(t, engagement.SyncFromMember(ctx, 301, member))
	badges, err = engagement.ListBadges(ctx, 301)
	require.NoError(t, err)
	assert.Len(t, badges, 1)
}

func TestDeleteCascade(t *testing.T) {
	users := NewUserRepository()
	rewards := NewRewardRepository()
	gamify := NewGamificationRepository()
	ctx := context.Background()

	profile := &user.UserProfile{
		CircleID: 9200,
		Email:    "cascade@example.com",
		Name:     "Cascade",
	}
	require.NoError(t, users.Create(ctx, profile))

	_, err := rewards.Claim(ctx, profile.ID, 1)
	require.NoError(t, err)

	require.NoError(t, users.DeleteCascade(ctx, profile.ID))

	_, err = users.GetByEmail(ctx, "cascade@example.com")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	// 子表数据一并清掉
	history, err := rewards.History(ctx, profile.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, history)

	state, err := gamify.GetOrCreate(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.TotalPoints)
}
