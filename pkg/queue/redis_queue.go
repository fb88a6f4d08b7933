// Package queue 基于 Redis 的社区数据同步队列
//
// 登录和定时任务会把"刷新某个成员的活跃度/徽章/空间"作为任务入队，
// 由 worker 异步回源社区平台，避免拖慢请求路径。
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"arena/pkg/config"
	"arena/pkg/redis"
)

// SyncTask 一次成员数据同步任务
type SyncTask struct {
	ID         string    `json:"id"`
	ProfileID  uint64    `json:"profile_id"`
	Email      string    `json:"email"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// QueueService Redis 队列服务
type QueueService struct {
	client      *redis.RedisClient
	prefix      string
	rateLimiter *rate.Limiter
	metrics     *QueueMetrics
}

// NewQueueService 创建队列服务实例
func NewQueueService() *QueueService {
	rateLimit := config.GetInt("queue.rate_limit", 1000)
	burst := config.GetInt("queue.rate_burst", rateLimit)

	return &QueueService{
		client:      redis.GetRedis(redis.QueueDB),
		prefix:      config.GetString("redis.queue_prefix", "arena:sync"),
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), burst),
		metrics:     NewQueueMetrics(),
	}
}

// PushTask 任务入队
func (q *QueueService) PushTask(ctx context.Context, task *SyncTask) error {
	// 应用限流，防止定时任务瞬间打爆队列
	if err := q.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit exceeded: %w", err)
	}

	taskJSON, err := json.Marshal(task)
	if err != nil {
		q.metrics.RecordError(OpPush)
		return fmt.Errorf("failed to marshal sync task: %w", err)
	}

	if err := q.client.Client.LPush(ctx, q.listKey(), taskJSON).Err(); err != nil {
		q.metrics.RecordError(OpPush)
		return fmt.Errorf("failed to push sync task: %w", err)
	}

	q.metrics.RecordSuccess(OpPush)
	return nil
}

// PopTask 阻塞式出队，超时返回 (nil, nil) 让 worker 有机会检查退出信号
func (q *QueueService) PopTask(ctx context.Context, timeout time.Duration) (*SyncTask, error) {
	result, err := q.client.Client.BRPop(ctx, timeout, q.listKey()).Result()
	if err != nil {
		if err == goredis.Nil || err == context.DeadlineExceeded {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop sync task: %w", err)
	}
	if len(result) != 2 {
		return nil, fmt.Errorf("invalid result from queue")
	}

	var task SyncTask
	if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sync task: %w", err)
	}
	return &task, nil
}

// Length 当前队列长度
func (q *QueueService) Length(ctx context.Context) (int64, error) {
	return q.client.Client.LLen(ctx, q.listKey()).Result()
}

// Ping 检查队列健康状态
func (q *QueueService) Ping(ctx context.Context) error {
	return q.client.Ping()
}

// Metrics 暴露指标收集器
func (q *QueueService) Metrics() *QueueMetrics {
	return q.metrics
}

func (q *QueueService) listKey() string {
	return fmt.Sprintf("%s:tasks", q.prefix)
}
