package auth

import (
	"context"
	"errors"
	"testing"

	"arena/app/models/user"
	"arena/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePusher 记录入队的任务
type fakePusher struct {
	tasks []*queue.SyncTask
	err   error
}

func (f *fakePusher) PushTask(ctx context.Context, task *queue.SyncTask) error {
	if f.err != nil {
		return f.err
	}
	f.tasks = append(f.tasks, task)
	return nil
}

func TestEnqueueProfileSyncOnLogin(t *testing.T) {
	pusher := &fakePusher{}
	profile := &user.UserProfile{Email: "returning@example.com"}
	profile.ID = 77

	enqueueProfileSync(context.Background(), pusher, profile)

	require.Len(t, pusher.tasks, 1)
	task := pusher.tasks[0]
	assert.Equal(t, uint64(77), task.ProfileID)
	assert.Equal(t, "returning@example.com", task.Email)
	assert.NotEmpty(t, task.ID)
	assert.False(t, task.EnqueuedAt.IsZero())
}

func TestEnqueueProfileSyncSkipsUnprofiled(t *testing.T) {
	pusher := &fakePusher{}

	// 没有档案或档案未落库时不入队
	enqueueProfileSync(context.Background(), pusher, nil)
	enqueueProfileSync(context.Background(), pusher, &user.UserProfile{Email: "new@example.com"})

	assert.Empty(t, pusher.tasks)
}

func TestEnqueueProfileSyncSwallowsPushError(t *testing.T) {
	pusher := &fakePusher{err: errors.New("queue down")}
	profile := &user.UserProfile{Email: "x@example.com"}
	profile.ID = 1

	// 入队失败不能让登录失败，这里不应 panic 也没有返回值
	enqueueProfileSync(context.Background(), pusher, profile)
	assert.Empty(t, pusher.tasks)
}
