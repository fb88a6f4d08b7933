package config

import (
	"arena/pkg/config"
)

func init() {
	config.Add("google", func() map[string]interface{} {
		return map[string]interface{}{
			"client_id":     config.Env("GOOGLE_CLIENT_ID", ""),
			"client_secret": config.Env("GOOGLE_CLIENT_SECRET", ""),
			"redirect_url":  config.Env("GOOGLE_REDIRECT_URL", ""),

			"timeout": config.Env("GOOGLE_TIMEOUT", 10),
		}
	})
}
