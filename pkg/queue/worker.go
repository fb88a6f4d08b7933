package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"arena/app/repositories"
	"arena/pkg/circle"
	"arena/pkg/logger"
)

// Worker 同步队列工作器组
type Worker struct {
	queueService *QueueService
	circleClient *circle.Client
	stopChan     chan struct{}
	metrics      *QueueMetrics
	wg           sync.WaitGroup
	config       WorkerConfig
}

// WorkerConfig 工作器配置
type WorkerConfig struct {
	WorkerCount     int           // 并发工作器数量
	PopTimeout      time.Duration // 出队阻塞时长
	TaskTimeout     time.Duration // 单任务处理超时
	ShutdownTimeout time.Duration // 关闭等待时长
}

// NewWorker 创建工作器组
func NewWorker(qs *QueueService, circleClient *circle.Client, config WorkerConfig) *Worker {
	if config.WorkerCount <= 0 {
		config.WorkerCount = 5
	}
	if config.PopTimeout <= 0 {
		config.PopTimeout = 5 * time.Second
	}
	if config.TaskTimeout <= 0 {
		config.TaskTimeout = 30 * time.Second
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 30 * time.Second
	}

	return &Worker{
		queueService: qs,
		circleClient: circleClient,
		stopChan:     make(chan struct{}),
		metrics:      qs.Metrics(),
		config:       config,
	}
}

// Start 启动工作器组
func (w *Worker) Start() {
	for i := 0; i < w.config.WorkerCount; i++ {
		w.wg.Add(1)
		go w.startWorker(i)
	}
}

// startWorker 启动单个工作器
func (w *Worker) startWorker(id int) {
	defer w.wg.Done()

	logger.InfoString("同步队列", "启动", fmt.Sprintf("worker %d 已启动", id))

	for {
		select {
		case <-w.stopChan:
			logger.InfoString("同步队列", "停止", fmt.Sprintf("worker %d 退出", id))
			return
		default:
			if err := w.processNextTask(); err != nil {
				logger.ErrorString("同步队列", "处理失败", fmt.Sprintf("worker %d: %v", id, err))
				time.Sleep(time.Second) // 错误恢复延迟
			}
		}
	}
}

// processNextTask 取出并处理下一个任务
func (w *Worker) processNextTask() error {
	ctx, cancel := context.WithTimeout(context.Background(), w.config.PopTimeout+time.Second)
	defer cancel()

	task, err := w.queueService.PopTask(ctx, w.config.PopTimeout)
	if err != nil {
		return err
	}
	if task == nil {
		return nil // 队列空，继续轮询
	}

	start := time.Now()
	err = w.handleTask(task)
	w.metrics.RecordProcessingTime(time.Since(start))

	if err != nil {
		w.metrics.RecordError(OpProcess)
		return err
	}
	w.metrics.RecordSuccess(OpProcess)
	return nil
}

// handleTask 回源社区平台并刷新本地互动数据
func (w *Worker) handleTask(task *SyncTask) error {
	ctx, cancel := context.WithTimeout(context.Background(), w.config.TaskTimeout)
	defer cancel()

	if w.circleClient == nil {
		return fmt.Errorf("circle client not configured")
	}

	member, err := w.circleClient.GetMemberByEmail(ctx, task.Email)
	if err != nil {
		// 平台查无此人不算失败，成员可能已被移除
		if err == circle.ErrNotMember {
			logger.WarnString("同步队列", "跳过", fmt.Sprintf(
				"email:%s 已不是社区成员", task.Email))
			return nil
		}
		return fmt.Errorf("fetch member failed: %w", err)
	}

	if err := repositories.NewEngagementRepository().
		SyncFromMember(ctx, task.ProfileID, member); err != nil {
		return fmt.Errorf("sync engagement failed: %w", err)
	}

	logger.DebugString("同步队列", "完成", fmt.Sprintf(
		"profile:%d email:%s 活跃度已刷新", task.ProfileID, task.Email))
	return nil
}

// Stop 优雅关闭工作器组
func (w *Worker) Stop() {
	close(w.stopChan)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.InfoString("同步队列", "停止", "所有 worker 已退出")
	case <-time.After(w.config.ShutdownTimeout):
		logger.WarnString("同步队列", "停止", "worker 退出超时")
	}
}
