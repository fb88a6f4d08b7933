// Package reward 每日登录奖励接口
package reward

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"arena/app/http/middlewares"
	"arena/app/repositories"
	"arena/app/requests"
	"arena/pkg/response"
	"arena/pkg/reward"
)

type RewardController struct {
	rewards *repositories.RewardRepository
}

func NewRewardController() *RewardController {
	return &RewardController{
		rewards: repositories.NewRewardRepository(),
	}
}

// Status 奖励页状态：当前连击、下一个可领取的天数、整张奖励表
func (rc *RewardController) Status(c *gin.Context) {
	profileID, ok := middlewares.CurrentProfileID(c)
	if !ok {
		return
	}

	status, err := rc.rewards.Status(c.Request.Context(), profileID)
	if err != nil {
		response.ServerError(c, err, "获取奖励状态失败")
		return
	}

	response.Data(c, status)
}

// Claim 领取指定天数的奖励
//
// 响应格式是前端的硬约定，错误分支的字段名不能改：
//   - 成功:     {"success": true, "xpEarned": N}
//   - 领错天:   {"error": "Wrong day", "message": "..."}
//   - 重复领取: {"error": "Already claimed"}
func (rc *RewardController) Claim(c *gin.Context) {
	profileID, ok := middlewares.CurrentProfileID(c)
	if !ok {
		return
	}

	req, err := requests.ValidateClaim(c)
	if err != nil {
		response.BadRequest(c, err, "请求参数验证失败")
		return
	}

	result, err := rc.rewards.Claim(c.Request.Context(), profileID, req.Day)
	if err != nil {
		var wrongDay *repositories.WrongDayError
		if errors.As(err, &wrongDay) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Wrong day",
				"message": reward.WrongDayMessage(wrongDay.Expected),
			})
			return
		}
		if errors.Is(err, repositories.ErrAlreadyClaimed) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Already claimed",
			})
			return
		}
		response.ServerError(c, err, "领取奖励失败")
		return
	}

	response.JSON(c, gin.H{
		"success":  true,
		"xpEarned": result.XpEarned,
	})
}
