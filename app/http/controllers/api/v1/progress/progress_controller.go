// Package progress 等级进度与 XP 流水接口
package progress

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"arena/app/http/middlewares"
	"arena/app/repositories"
	"arena/pkg/response"
)

type ProgressController struct {
	rewards *repositories.RewardRepository
	gamify  *repositories.GamificationRepository
}

func NewProgressController() *ProgressController {
	return &ProgressController{
		rewards: repositories.NewRewardRepository(),
		gamify:  repositories.NewGamificationRepository(),
	}
}

// Index 返回等级进度摘要和最近的 XP 流水
func (pc *ProgressController) Index(c *gin.Context) {
	profileID, ok := middlewares.CurrentProfileID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	state, err := pc.gamify.GetOrCreate(c.Request.Context(), profileID)
	if err != nil {
		response.ServerError(c, err, "读取进度失败")
		return
	}

	history, err := pc.rewards.History(c.Request.Context(), profileID, limit)
	if err != nil {
		response.ServerError(c, err, "读取XP流水失败")
		return
	}

	response.Data(c, gin.H{
		"level":                state.CurrentLevel,
		"total_points":         state.TotalPoints,
		"points_to_next_level": state.PointsToNextLevel,
		"level_progress":       state.LevelProgress,
		"history":              history,
	})
}
