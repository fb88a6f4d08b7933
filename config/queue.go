package config

import "arena/pkg/config"

func init() {
	config.Add("queue", func() map[string]interface{} {
		return map[string]interface{}{
			"rate_limit":   config.Env("QUEUE_RATE_LIMIT", 12),
			"rate_burst":   config.Env("QUEUE_RATE_BURST", 50),
			"worker_count": config.Env("QUEUE_WORKER_COUNT", 5),
			"pop_timeout":  config.Env("QUEUE_POP_TIMEOUT", 5),
			"task_timeout": config.Env("QUEUE_TASK_TIMEOUT", 30),

			// 夜间全量同步触发时刻，HH:MM
			"sync_at": config.Env("QUEUE_SYNC_AT", "03:30"),
		}
	})
}
