package middlewares

import (
	"arena/app/repositories"
	"arena/pkg/logger"
	"arena/pkg/response"
	"arena/pkg/session"

	"github.com/gin-gonic/gin"
)

// AuthRequired 要求请求携带有效会话
// 通过校验后把会话对象挂到 gin.Context 上，供控制器取用
func AuthRequired() gin.HandlerFunc {
	store := session.NewStore()

	return func(c *gin.Context) {
		sess, err := store.Get(c)
		if err != nil {
			response.Abort401(c)
			return
		}

		c.Set("current_session", sess)
		c.Next()
	}
}

// CurrentSession 从上下文中取出会话对象，未登录时返回 nil
func CurrentSession(c *gin.Context) *session.Session {
	value, exists := c.Get("current_session")
	if !exists {
		return nil
	}
	sess, ok := value.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

// CurrentProfileID 取会话对应的档案 ID
//
// 登录早于建档的会话 ProfileID 为 0，这里回查本地库补全一次；
// 仍然查不到说明用户还没建档，响应 404 + not_found 并返回 false。
// 档案 ID 为 0 的请求绝不能漏到奖励/进度仓库，否则所有未建档
// 用户会共享同一行连击和 XP 状态。
func CurrentProfileID(c *gin.Context) (uint64, bool) {
	sess := CurrentSession(c)
	if sess == nil {
		response.Abort401(c)
		return 0, false
	}
	if sess.ProfileID != 0 {
		return sess.ProfileID, true
	}

	profile, err := repositories.NewUserRepository().GetByEmail(c.Request.Context(), sess.Email)
	if err != nil {
		response.NotMember(c)
		return 0, false
	}

	sess.ProfileID = profile.ID
	sess.CircleID = profile.CircleID
	if sess.ID != "" {
		if err := session.NewStore().Update(c, sess); err != nil {
			logger.ErrorString("会话", "档案回填失败", err.Error())
		}
	}
	return profile.ID, true
}
