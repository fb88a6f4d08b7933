// Package board 排行榜接口
package board

import (
	"errors"

	"github.com/gin-gonic/gin"

	"arena/app/http/middlewares"
	usermodel "arena/app/models/user"
	"arena/app/repositories"
	"arena/pkg/logger"
	"arena/pkg/response"
)

type LeaderboardController struct {
	boards *repositories.LeaderboardRepository
	users  *repositories.UserRepository
}

func NewLeaderboardController() *LeaderboardController {
	return &LeaderboardController{
		boards: repositories.NewLeaderboardRepository(),
		users:  repositories.NewUserRepository(),
	}
}

// Index 排行榜，filter 取 global|week|month|level，默认 global
// 返回前 100 名，外加调用者自己的名次、百分位和与上一名的差距
func (lc *LeaderboardController) Index(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	filter := c.DefaultQuery("filter", repositories.FilterGlobal)
	switch filter {
	case repositories.FilterGlobal, repositories.FilterWeek, repositories.FilterMonth, repositories.FilterLevel:
	default:
		response.Abort400(c, "filter 仅支持 global、week、month、level")
		return
	}

	// 调用者档案用于计算个人名次，取不到时榜单照常返回
	var caller *usermodel.UserProfile
	profile, err := lc.users.GetByEmail(c.Request.Context(), sess.Email)
	if err == nil {
		caller = profile
	} else if !errors.Is(err, repositories.ErrProfileNotFound) {
		logger.ErrorString("排行榜", "查询调用者档案", err.Error())
	}

	result, err := lc.boards.Compute(c.Request.Context(), filter, caller)
	if err != nil {
		response.ServerError(c, err, "获取排行榜失败")
		return
	}

	response.Data(c, gin.H{
		"filter":      filter,
		"leaderboard": result.Entries,
		"caller":      result.Caller,
	})
}
