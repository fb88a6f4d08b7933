package bootstrap

import (
	"time"

	"arena/pkg/config"
	"arena/pkg/google"
	"arena/pkg/logger"
)

// SetupGoogle 初始化 Google OAuth 服务
// 未配置 client_id 时返回 nil，登录接口会响应 500
func SetupGoogle() *google.Service {
	clientID := config.GetString("google.client_id")
	if clientID == "" {
		logger.WarnString("Google", "Setup", "缺少 GOOGLE_CLIENT_ID，登录功能不可用")
		return nil
	}

	service := google.NewService(&google.Config{
		ClientID:     clientID,
		ClientSecret: config.GetString("google.client_secret"),
		RedirectURL:  config.GetString("google.redirect_url"),
		Timeout:      time.Duration(config.GetInt("google.timeout")) * time.Second,
	})
	if service == nil {
		logger.ErrorString("Google", "Setup", "Google OAuth 服务初始化失败")
		return nil
	}

	logger.InfoString("Google", "Setup", "Google OAuth 服务初始化成功")
	return service
}
