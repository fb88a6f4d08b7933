// Package user 用户资料的读写接口
package user

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"arena/app/http/middlewares"
	usermodel "arena/app/models/user"
	"arena/app/repositories"
	"arena/app/requests"
	"arena/pkg/app"
	"arena/pkg/circle"
	"arena/pkg/logger"
	"arena/pkg/response"
	"arena/pkg/session"
)

// MaxAvatarSize 头像文件大小上限 2MB
const MaxAvatarSize = 2 << 20

type UserController struct {
	users    *repositories.UserRepository
	profiles *repositories.ProfileRepository
	gamify   *repositories.GamificationRepository
	circle   *circle.Client
	sessions *session.Store
}

func NewUserController(circleClient *circle.Client) *UserController {
	return &UserController{
		users:    repositories.NewUserRepository(),
		profiles: repositories.NewProfileRepository(circleClient),
		gamify:   repositories.NewGamificationRepository(),
		circle:   circleClient,
		sessions: session.NewStore(),
	}
}

// Current 回显当前会话身份
func (uc *UserController) Current(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	response.Data(c, gin.H{
		"email":      sess.Email,
		"name":       sess.Name,
		"picture":    sess.Picture,
		"profile_id": sess.ProfileID,
	})
}

// Profile 返回聚合后的用户视图
// 社区平台查无此人时响应 404 + not_found 标记，前端据此跳转建档页
func (uc *UserController) Profile(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	view, err := uc.profiles.ResolveByEmail(c.Request.Context(), sess.Email)
	if err != nil {
		if errors.Is(err, circle.ErrNotMember) {
			response.NotMember(c)
			return
		}
		response.ServerError(c, err, "获取用户资料失败")
		return
	}

	// 建档后的首次访问，把档案 ID 补进会话
	if sess.ProfileID == 0 && view.ID != 0 {
		sess.ProfileID = view.ID
		sess.CircleID = view.CircleID
		if err := uc.sessions.Update(c, sess); err != nil {
			logger.ErrorString("用户", "会话回填失败", err.Error())
		}
	}

	response.Data(c, view)
}

// CreateProfile 建档
// 先尝试把用户邀请进社区平台，平台不可用时仅建本地档案，
// CircleID 用负数占位，等夜间同步任务补齐
func (uc *UserController) CreateProfile(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	req, err := requests.ValidateCreateProfile(c)
	if err != nil {
		handleValidationError(c, err)
		return
	}

	// 档案邮箱以会话身份为准，请求体里的邮箱仅做展示层校验
	email := sess.Email
	if email == "" {
		email = req.Email
	}

	profile := &usermodel.UserProfile{
		CircleID: -time.Now().UnixNano(),
		Email:    email,
		Name:     req.Name,
		Headline: req.Headline,
		Bio:      req.Bio,
	}

	if uc.circle != nil {
		member, err := uc.circle.InviteMember(c.Request.Context(), &circle.MemberRequest{
			Email:    email,
			Name:     req.Name,
			Headline: req.Headline,
			Bio:      req.Bio,
		})
		if err != nil {
			logger.WarnString("用户", "社区邀请失败", err.Error())
		} else if member != nil && member.ID > 0 {
			profile.CircleID = member.ID
		}
	}

	if err := uc.users.UpsertByCircleID(c.Request.Context(), profile); err != nil {
		response.ServerError(c, err, "创建档案失败")
		return
	}

	stored, err := uc.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		response.ServerError(c, err, "创建档案失败")
		return
	}

	// 惰性初始化游戏化状态，保证新档案 Level 1 起步
	if _, err := uc.gamify.GetOrCreate(c.Request.Context(), stored.ID); err != nil {
		logger.ErrorString("用户", "初始化游戏化状态失败", err.Error())
	}

	sess.ProfileID = stored.ID
	sess.CircleID = stored.CircleID
	sess.Name = stored.Name
	if err := uc.sessions.Update(c, sess); err != nil {
		logger.ErrorString("用户", "会话回填失败", err.Error())
	}

	view, err := uc.profiles.ResolveByEmail(c.Request.Context(), email)
	if err != nil {
		response.ServerError(c, err, "读取新档案失败")
		return
	}

	response.Created(c, view, "档案创建成功")
}

// Update 更新资料，multipart 表单，支持头像上传
func (uc *UserController) Update(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	profile, err := uc.currentProfile(c, sess)
	if err != nil {
		return // currentProfile 已写好响应
	}

	req, err := requests.ValidateUpdateProfile(c)
	if err != nil {
		handleValidationError(c, err)
		return
	}

	applyProfileUpdates(profile, req)

	// 头像可选，有文件时先落盘再更新 URL
	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		avatarURL, err := avatarStorageURL(file.Size, file.Filename)
		if err != nil {
			response.Abort400(c, err.Error())
			return
		}
		if err := c.SaveUploadedFile(file, localAvatarPath(avatarURL)); err != nil {
			response.ServerError(c, err, "头像保存失败")
			return
		}
		profile.AvatarURL = avatarURL
	}

	if err := uc.users.Save(c.Request.Context(), profile); err != nil {
		response.ServerError(c, err, "更新资料失败")
		return
	}

	// 推送到社区平台，失败只记日志不阻塞
	if uc.circle != nil && profile.IsEnrolled() {
		_, err := uc.circle.UpdateMember(c.Request.Context(), profile.CircleID, &circle.MemberRequest{
			Email:     profile.Email,
			Name:      profile.Name,
			AvatarURL: profile.AvatarURL,
			Bio:       profile.Bio,
			Headline:  profile.Headline,
			Location:  profile.Location,
			Website:   profile.Website,
		})
		if err != nil {
			logger.WarnString("用户", "资料推送社区失败", err.Error())
		}
	}

	view, err := uc.profiles.ResolveByEmail(c.Request.Context(), profile.Email)
	if err != nil {
		response.ServerError(c, err, "读取资料失败")
		return
	}

	response.Data(c, view)
}

// Delete 删除账号
// 本地级联删除所有子表数据，再尽力从社区平台移除成员，最后注销会话
func (uc *UserController) Delete(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	profile, err := uc.currentProfile(c, sess)
	if err != nil {
		return
	}

	if err := uc.users.DeleteCascade(c.Request.Context(), profile.ID); err != nil {
		response.ServerError(c, err, "删除账号失败")
		return
	}

	if uc.circle != nil && profile.IsEnrolled() {
		if err := uc.circle.RemoveMember(c.Request.Context(), profile.CircleID); err != nil {
			logger.WarnString("用户", "社区移除成员失败", err.Error())
		}
	}

	uc.sessions.Destroy(c)
	logger.InfoString("用户", "账号删除", profile.Email)

	response.Data(c, gin.H{"message": "账号已删除"})
}

// currentProfile 取当前会话对应的本地档案，取不到时直接写 404 响应
func (uc *UserController) currentProfile(c *gin.Context, sess *session.Session) (*usermodel.UserProfile, error) {
	profile, err := uc.users.GetByEmail(c.Request.Context(), sess.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			response.NotMember(c)
		} else {
			response.ServerError(c, err, "查询档案失败")
		}
		return nil, err
	}
	return profile, nil
}

// avatarStorageURL 校验头像并生成存储路径
func avatarStorageURL(size int64, filename string) (string, error) {
	if size > MaxAvatarSize {
		return "", errors.New("头像文件不能超过 2MB")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", errors.New("头像仅支持 jpg、png、gif、webp 格式")
	}

	return app.URL(fmt.Sprintf("/uploads/avatars/%s%s", uuid.New().String(), ext)), nil
}

// localAvatarPath 把头像 URL 映射为本地磁盘路径
func localAvatarPath(avatarURL string) string {
	idx := strings.Index(avatarURL, "/uploads/")
	if idx < 0 {
		return "public" + avatarURL
	}
	return "public" + avatarURL[idx:]
}

// applyProfileUpdates 只覆盖提交了内容的字段
func applyProfileUpdates(profile *usermodel.UserProfile, req *requests.UpdateProfileRequest) {
	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Headline != "" {
		profile.Headline = req.Headline
	}
	if req.Location != "" {
		profile.Location = req.Location
	}
	if req.Website != "" {
		profile.Website = req.Website
	}
	if req.Twitter != "" {
		profile.Twitter = req.Twitter
	}
	if req.LinkedIn != "" {
		profile.LinkedIn = req.LinkedIn
	}
	if req.Instagram != "" {
		profile.Instagram = req.Instagram
	}
}

// handleValidationError 统一映射验证错误
func handleValidationError(c *gin.Context, err error) {
	var verr requests.ValidationError
	if errors.As(err, &verr) {
		response.ValidationError(c, verr.Errors)
		return
	}
	response.BadRequest(c, err, "请求参数验证失败")
}
