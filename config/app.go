package config

import "arena/pkg/config"

func init() {
	config.Add("app", func() map[string]interface{} {
		return map[string]interface{}{

			// 应用名称
			"name": config.Env("APP_NAME", "Arena"),

			// 当前环境，用以区分多环境，一般为 local, stage, production, test
			"env": config.Env("APP_ENV", "production"),

			// 是否进入调试模式
			"debug": config.Env("APP_DEBUG", false),

			// 应用服务端口
			"port": config.Env("APP_PORT", "3000"),

			// 应用对外地址，头像等静态资源 URL 的前缀
			"url": config.Env("APP_URL", "http://localhost:3000"),

			// 前端地址，OAuth 回调完成后跳回这里
			"frontend_url": config.Env("FRONTEND_URL", "http://localhost:5173"),

			// 设置时区，每日签到的「今天」按这个时区判定
			"timezone": config.Env("TIMEZONE", "America/New_York"),
		}
	})
}
