package requests

import (
	"fmt"

	"arena/pkg/reward"

	"github.com/gin-gonic/gin"
)

// ClaimRequest 领取每日奖励的请求体
type ClaimRequest struct {
	Day int `json:"day" valid:"day"`
}

// ValidateClaim 校验领取请求
func ValidateClaim(c *gin.Context) (*ClaimRequest, error) {
	var req ClaimRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("解析 JSON 失败: %w", err)
	}

	if req.Day < 1 || req.Day > reward.CycleDays {
		return nil, fmt.Errorf("day 必须在 1 到 %d 之间", reward.CycleDays)
	}

	return &req, nil
}
