// Package app 提供应用程序相关的辅助函数
package app

import (
	"time"

	"arena/pkg/config"
)

// IsLocal 判断当前是否运行在本地环境
func IsLocal() bool {
	return config.Get("app.env") == "local"
}

// IsProduction 判断当前是否运行在生产环境
func IsProduction() bool {
	return config.Get("app.env") == "production"
}

// IsTesting 判断当前是否运行在测试环境
func IsTesting() bool {
	return config.Get("app.env") == "testing"
}

// TimenowInTimezone 获取当前时间（使用配置的时区）
// 每日奖励的"今天/昨天"判断统一以该时区为准
func TimenowInTimezone() time.Time {
	timezone, _ := time.LoadLocation(config.GetString("app.timezone"))
	return time.Now().In(timezone)
}

// URL 传入路径，拼接站点完整 URL
func URL(path string) string {
	return config.Get("app.url") + path
}
