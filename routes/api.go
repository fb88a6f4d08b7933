package routes

import (
	"arena/app/http/controllers/api/v1/auth"
	"arena/app/http/controllers/api/v1/board"
	"arena/app/http/controllers/api/v1/progress"
	"arena/app/http/controllers/api/v1/reward"
	"arena/app/http/controllers/api/v1/system"
	"arena/app/http/controllers/api/v1/user"
	"arena/app/http/middlewares"
	"arena/pkg/circle"
	"arena/pkg/google"

	"github.com/gin-gonic/gin"
)

// 路由限流配置
const (
	// 🌍 全局限流：每小时每IP 30000 请求
	GlobalRateLimit = "30000-H"
	// 🔐 登录相关限流：每分钟每IP 20 请求
	AuthRateLimit = "20-M"
	// 🎁 领取奖励限流：每分钟每IP 30 请求
	ClaimRateLimit = "30-M"
	// 📊 排行榜限流：每分钟每IP 120 请求
	BoardRateLimit = "120-M"
)

// RegisterAPIRoutes 注册所有 API 路由
func RegisterAPIRoutes(r *gin.Engine, circleClient *circle.Client, googleService *google.Service) {
	api := r.Group("/api")

	api.Use(
		middlewares.SecurityHeaders(),
		middlewares.LimitIP(GlobalRateLimit),
		middlewares.Cors(),
	)

	// 💚 健康检查
	hc := system.NewHealthController(circleClient)
	api.GET("/health", hc.Check)

	// 🔐 认证相关路由
	authRoutes := api.Group("/auth")
	{
		ac := auth.NewAuthController(googleService)

		// Google OAuth 授权地址
		// GET /api/auth/google/url
		authRoutes.GET("/google/url",
			middlewares.LimitPerRoute(AuthRateLimit),
			ac.GoogleURL,
		)

		// Google OAuth 授权码回调
		// GET /api/auth/google/callback
		authRoutes.GET("/google/callback",
			middlewares.LimitPerRoute(AuthRateLimit),
			ac.GoogleCallback,
		)

		// ID Token 直登（One Tap / 按钮模式）
		// POST /api/auth/google
		authRoutes.POST("/google",
			middlewares.LimitPerRoute(AuthRateLimit),
			ac.GoogleLogin,
		)

		// 退出登录
		// POST /api/auth/logout
		authRoutes.POST("/logout", ac.Logout)

		// 会话续期
		// POST /api/refresh-session
		api.POST("/refresh-session", ac.RefreshSession)
	}

	// 🔒 以下路由都要求有效会话
	authed := api.Group("")
	authed.Use(middlewares.AuthRequired())
	{
		uc := user.NewUserController(circleClient)

		// 会话身份回显
		authed.GET("/user", uc.Current)
		// 聚合用户视图，查无此人时 404 + not_found
		authed.GET("/user/profile", uc.Profile)
		// 建档
		authed.POST("/user/create-profile", uc.CreateProfile)
		// 更新资料（multipart，头像 ≤2MB）
		authed.PUT("/user/update", uc.Update)
		// 删除账号（本地级联 + 社区移除）
		authed.DELETE("/account/delete", uc.Delete)

		// 🎁 每日登录奖励
		rc := reward.NewRewardController()
		authed.GET("/daily-rewards", rc.Status)
		authed.POST("/daily-rewards/claim",
			middlewares.LimitPerRoute(ClaimRateLimit),
			rc.Claim,
		)

		// 📊 排行榜
		lc := board.NewLeaderboardController()
		authed.GET("/leaderboard",
			middlewares.LimitPerRoute(BoardRateLimit),
			lc.Index,
		)

		// 📈 等级进度与 XP 流水
		pc := progress.NewProgressController()
		authed.GET("/progress", pc.Index)
	}
}
