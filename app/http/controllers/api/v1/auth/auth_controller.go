// Package auth 处理 Google OAuth 登录与会话生命周期
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"arena/app/models/user"
	"arena/app/repositories"
	"arena/pkg/config"
	"arena/pkg/google"
	"arena/pkg/logger"
	"arena/pkg/queue"
	"arena/pkg/response"
	"arena/pkg/session"

	redispkg "arena/pkg/redis"
)

// state 参数的有效期，回调必须在这个窗口内完成
const stateLifetime = 10 * time.Minute

// syncPusher 登录同步任务的入队口
type syncPusher interface {
	PushTask(ctx context.Context, task *queue.SyncTask) error
}

type AuthController struct {
	googleService *google.Service
	users         *repositories.UserRepository
	sessions      *session.Store
	syncQueue     syncPusher
}

func NewAuthController(googleService *google.Service) *AuthController {
	return &AuthController{
		googleService: googleService,
		users:         repositories.NewUserRepository(),
		sessions:      session.NewStore(),
		syncQueue:     queue.NewQueueService(),
	}
}

func stateKey(state string) string {
	return config.GetString("app.name") + ":oauth_state:" + state
}

// GoogleURL 生成 Google 授权跳转地址
func (ac *AuthController) GoogleURL(c *gin.Context) {
	if ac.googleService == nil {
		response.Abort500(c, "Google 登录未配置")
		return
	}

	// state 随机生成并暂存，防止回调伪造
	state := uuid.New().String()
	redispkg.Redis.Set(stateKey(state), "1", stateLifetime)

	response.Data(c, gin.H{
		"url": ac.googleService.AuthURL(state),
	})
}

// GoogleCallback 处理授权码回调，建立会话后跳回前端
func (ac *AuthController) GoogleCallback(c *gin.Context) {
	if ac.googleService == nil {
		response.Abort500(c, "Google 登录未配置")
		return
	}

	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		response.Abort400(c, "缺少 code 或 state 参数")
		return
	}

	// state 一次性使用
	if !redispkg.Redis.Has(stateKey(state)) {
		response.Abort401(c, "state 无效或已过期")
		return
	}
	redispkg.Redis.Del(stateKey(state))

	tokens, err := ac.googleService.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		logger.ErrorString("认证", "授权码兑换失败", err.Error())
		response.Abort401(c, "Google 授权失败")
		return
	}

	identity, err := ac.googleService.VerifyIDToken(c.Request.Context(), tokens.IDToken)
	if err != nil {
		logger.ErrorString("认证", "ID Token 校验失败", err.Error())
		response.Abort401(c, "Google 身份校验失败")
		return
	}

	if err := ac.establishSession(c, identity); err != nil {
		response.ServerError(c, err, "创建会话失败")
		return
	}

	// 回到前端首页，会话已写入 Cookie
	c.Redirect(302, config.GetString("app.frontend_url", "/"))
}

// GoogleLogin 处理前端直接提交的 ID Token（One Tap / 按钮模式）
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	if ac.googleService == nil {
		response.Abort500(c, "Google 登录未配置")
		return
	}

	var req struct {
		Credential string `json:"credential"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Credential == "" {
		response.Abort400(c, "缺少 credential 参数")
		return
	}

	identity, err := ac.googleService.VerifyIDToken(c.Request.Context(), req.Credential)
	if err != nil {
		logger.ErrorString("认证", "ID Token 校验失败", err.Error())
		response.Abort401(c, "Google 身份校验失败")
		return
	}

	if err := ac.establishSession(c, identity); err != nil {
		response.ServerError(c, err, "创建会话失败")
		return
	}

	sess := mustSession(c)
	response.Data(c, gin.H{
		"email":   sess.Email,
		"name":    sess.Name,
		"picture": sess.Picture,
	})
}

// Logout 注销当前会话
func (ac *AuthController) Logout(c *gin.Context) {
	ac.sessions.Destroy(c)
	response.Data(c, gin.H{"message": "已退出登录"})
}

// RefreshSession 会话续期
func (ac *AuthController) RefreshSession(c *gin.Context) {
	sess, err := ac.sessions.Refresh(c)
	if err != nil {
		response.Abort401(c)
		return
	}

	response.Data(c, gin.H{
		"email":   sess.Email,
		"name":    sess.Name,
		"picture": sess.Picture,
	})
}

// establishSession 用 Google 身份建立会话
// 本地没有档案也允许登录，前端随后会走建档流程
func (ac *AuthController) establishSession(c *gin.Context, identity *google.Identity) error {
	sess := &session.Session{
		Email:   identity.Email,
		Name:    identity.Name,
		Picture: identity.Picture,
	}

	profile, err := ac.users.GetByEmail(c.Request.Context(), identity.Email)
	if err == nil {
		sess.ProfileID = profile.ID
		sess.CircleID = profile.CircleID
		if profile.Name != "" {
			sess.Name = profile.Name
		}

		// 回访用户登录即入队一次同步，活跃度不用等夜间任务才刷新
		enqueueProfileSync(c.Request.Context(), ac.syncQueue, profile)
	} else if !errors.Is(err, repositories.ErrProfileNotFound) {
		logger.ErrorString("认证", "查询本地档案失败", err.Error())
	}

	if err := ac.sessions.Start(c, sess); err != nil {
		return err
	}

	c.Set("current_session", sess)
	return nil
}

// enqueueProfileSync 为已建档的用户入队一次成员数据同步
// 入队失败只记日志，登录流程不受影响
func enqueueProfileSync(ctx context.Context, pusher syncPusher, profile *user.UserProfile) {
	if pusher == nil || profile == nil || profile.ID == 0 {
		return
	}

	task := &queue.SyncTask{
		ID:         uuid.New().String(),
		ProfileID:  profile.ID,
		Email:      profile.Email,
		EnqueuedAt: time.Now(),
	}
	if err := pusher.PushTask(ctx, task); err != nil {
		logger.WarnString("认证", "同步任务入队失败", err.Error())
	}
}

func mustSession(c *gin.Context) *session.Session {
	value, _ := c.Get("current_session")
	sess, _ := value.(*session.Session)
	return sess
}
