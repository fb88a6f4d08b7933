// Package system 健康检查等系统接口
package system

import (
	"time"

	"github.com/gin-gonic/gin"

	"arena/pkg/circle"
	"arena/pkg/database"
	"arena/pkg/queue"
	"arena/pkg/redis"
	"arena/pkg/response"
)

type HealthController struct {
	queueService *queue.QueueService
	circleClient *circle.Client
}

func NewHealthController(circleClient *circle.Client) *HealthController {
	return &HealthController{
		queueService: queue.NewQueueService(),
		circleClient: circleClient,
	}
}

// Check 健康检查
// 数据库或 Redis 故障视为不健康，社区平台只上报状态不拖垮整体
func (hc *HealthController) Check(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		checks["database"] = "down"
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if err := redis.Redis.Ping(); err != nil {
		checks["redis"] = "down"
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	if err := hc.queueService.Ping(c.Request.Context()); err != nil {
		checks["queue"] = "down"
		healthy = false
	} else {
		checks["queue"] = "ok"
	}

	if hc.circleClient == nil {
		checks["circle"] = "unconfigured"
	} else if err := hc.circleClient.HealthCheck(c.Request.Context()); err != nil {
		checks["circle"] = "degraded"
	} else {
		checks["circle"] = "ok"
	}

	checks["queue_metrics"] = hc.queueService.Metrics().Snapshot()

	if !healthy {
		response.Abort500(c, "service unhealthy")
		return
	}

	response.Data(c, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
		"checks": checks,
	})
}
