package bootstrap

import (
	"context"
	"fmt"
	"time"

	"arena/app/repositories"
	"arena/pkg/circle"
	"arena/pkg/config"
	"arena/pkg/logger"
	"arena/pkg/queue"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// SetupScheduler 启动夜间全量同步调度器
// 每天在配置的时刻把所有档案的同步任务推进队列，由工作器组消化
func SetupScheduler(circleClient *circle.Client) gocron.Scheduler {
	if circleClient == nil {
		logger.WarnString("Scheduler", "Setup", "社区平台未配置，夜间同步不启动")
		return nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		logger.ErrorString("Scheduler", "Setup", err.Error())
		return nil
	}

	syncAt := config.GetString("queue.sync_at", "03:30")
	var hour, minute int
	if _, err := fmt.Sscanf(syncAt, "%d:%d", &hour, &minute); err != nil {
		logger.ErrorString("Scheduler", "Setup", "QUEUE_SYNC_AT 格式应为 HH:MM，收到 "+syncAt)
		hour, minute = 3, 30
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), uint(minute), 0))),
		gocron.NewTask(enqueueAllProfiles),
	)
	if err != nil {
		logger.ErrorString("Scheduler", "Setup", err.Error())
		return nil
	}

	sched.Start()
	logger.InfoString("Scheduler", "Setup", "夜间同步任务已注册，触发时刻 "+syncAt)
	return sched
}

// enqueueAllProfiles 把全部档案的同步任务推进队列
func enqueueAllProfiles() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	profiles, err := repositories.NewUserRepository().ListAll(ctx)
	if err != nil {
		logger.ErrorString("Scheduler", "全量同步", "读取档案列表失败："+err.Error())
		return
	}

	queueService := queue.NewQueueService()
	enqueued := 0
	for _, profile := range profiles {
		task := &queue.SyncTask{
			ID:         uuid.New().String(),
			ProfileID:  profile.ID,
			Email:      profile.Email,
			EnqueuedAt: time.Now(),
		}
		if err := queueService.PushTask(ctx, task); err != nil {
			logger.ErrorString("Scheduler", "全量同步", fmt.Sprintf(
				"profile:%d 入队失败：%v", profile.ID, err))
			continue
		}
		enqueued++
	}

	logger.InfoString("Scheduler", "全量同步", fmt.Sprintf(
		"共 %d 个档案，成功入队 %d 个", len(profiles), enqueued))
}
