package bootstrap

import (
	"fmt"
	"time"

	"arena/pkg/circle"
	"arena/pkg/config"
	"arena/pkg/logger"
)

// SetupCircle 初始化社区平台客户端
// 未配置令牌时返回 nil，上层按「平台不可用」降级处理
func SetupCircle() *circle.Client {
	token := config.GetString("circle.token")
	if token == "" {
		logger.WarnString("Circle", "Setup", "缺少 CIRCLE_API_TOKEN，社区平台功能降级为本地模式")
		return nil
	}

	client := circle.NewClient(&circle.Config{
		BaseURL:    config.GetString("circle.base_url"),
		Token:      token,
		Timeout:    time.Duration(config.GetInt("circle.timeout")) * time.Second,
		MaxRetries: config.GetInt("circle.max_retries"),
	})
	if client == nil {
		logger.ErrorString("Circle", "Setup", "社区平台客户端初始化失败")
		return nil
	}

	logger.InfoString("Circle", "Setup", fmt.Sprintf(
		"社区平台客户端初始化成功 [BaseURL: %s]", config.GetString("circle.base_url")))
	return client
}
