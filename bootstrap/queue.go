package bootstrap

import (
	"time"

	"arena/pkg/circle"
	"arena/pkg/config"
	"arena/pkg/logger"
	"arena/pkg/queue"
	"arena/pkg/redis"
)

// SetupQueue 启动同步队列工作器组
// 返回 Worker 供主程序在退出时优雅关闭
func SetupQueue(circleClient *circle.Client) *queue.Worker {
	if redis.Manager == nil {
		logger.ErrorString("Queue", "Setup", "Redis manager not initialized")
		return nil
	}

	if circleClient == nil {
		logger.WarnString("Queue", "Setup", "社区平台未配置，同步队列不启动")
		return nil
	}

	worker := queue.NewWorker(queue.NewQueueService(), circleClient, queue.WorkerConfig{
		WorkerCount:     config.GetInt("queue.worker_count", 5),
		PopTimeout:      time.Duration(config.GetInt("queue.pop_timeout", 5)) * time.Second,
		TaskTimeout:     time.Duration(config.GetInt("queue.task_timeout", 30)) * time.Second,
		ShutdownTimeout: 30 * time.Second,
	})

	worker.Start()

	logger.InfoString("Queue", "Setup", "同步队列工作器组启动成功")
	return worker
}
