package config

import (
	"arena/pkg/config"
)

func init() {
	config.Add("session", func() map[string]interface{} {
		return map[string]interface{}{
			"cookie_name": config.Env("SESSION_COOKIE_NAME", "arena_session"),

			// 会话有效期，单位秒，默认 24 小时
			"lifetime": config.Env("SESSION_LIFETIME", 86400),
		}
	})
}
