package config

import (
	"arena/pkg/config"
)

func init() {
	config.Add("circle", func() map[string]interface{} {
		return map[string]interface{}{
			// Admin API 地址与令牌
			"base_url": config.Env("CIRCLE_API_URL", "https://app.circle.so/api/admin/v2"),
			"token":    config.Env("CIRCLE_API_TOKEN", ""),

			"timeout":     config.Env("CIRCLE_TIMEOUT", 15),
			"max_retries": config.Env("CIRCLE_MAX_RETRIES", 3),
		}
	})
}
