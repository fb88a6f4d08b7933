package queue

import (
	"sync/atomic"
	"time"
)

// MetricOperation 指标操作类型
type MetricOperation string

const (
	OpPush    MetricOperation = "push"
	OpProcess MetricOperation = "process"
)

// QueueMetrics 队列运行指标
type QueueMetrics struct {
	totalTasks      atomic.Int64
	successfulTasks atomic.Int64
	failedTasks     atomic.Int64

	// 处理耗时（毫秒）
	totalProcessingMs atomic.Int64
	processedCount    atomic.Int64
}

// 进程内共享一份指标，健康检查和 worker 看到同一组计数
var sharedMetrics = &QueueMetrics{}

// NewQueueMetrics 获取指标收集器
func NewQueueMetrics() *QueueMetrics {
	return sharedMetrics
}

// RecordSuccess 记录成功操作
func (m *QueueMetrics) RecordSuccess(op MetricOperation) {
	m.successfulTasks.Add(1)
	m.totalTasks.Add(1)
}

// RecordError 记录失败操作
func (m *QueueMetrics) RecordError(op MetricOperation) {
	m.failedTasks.Add(1)
	m.totalTasks.Add(1)
}

// RecordProcessingTime 记录任务处理耗时
func (m *QueueMetrics) RecordProcessingTime(duration time.Duration) {
	m.totalProcessingMs.Add(duration.Milliseconds())
	m.processedCount.Add(1)
}

// Snapshot 指标快照，健康检查接口输出用
type Snapshot struct {
	Total           int64 `json:"total"`
	Successful      int64 `json:"successful"`
	Failed          int64 `json:"failed"`
	AvgProcessingMs int64 `json:"avg_processing_ms"`
}

// Snapshot 导出当前指标
func (m *QueueMetrics) Snapshot() Snapshot {
	snapshot := Snapshot{
		Total:      m.totalTasks.Load(),
		Successful: m.successfulTasks.Load(),
		Failed:     m.failedTasks.Load(),
	}
	if count := m.processedCount.Load(); count > 0 {
		snapshot.AvgProcessingMs = m.totalProcessingMs.Load() / count
	}
	return snapshot
}
