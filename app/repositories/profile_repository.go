package repositories

import (
	"context"
	"errors"
	"time"

	"arena/app/models/badge"
	"arena/app/models/space"
	"arena/app/models/user"
	"arena/pkg/circle"
	"arena/pkg/logger"
)

// ProfileView 聚合后的统一用户视图
// 无论数据来自本地库还是刚从社区平台拉取，字段集合保持一致
type ProfileView struct {
	ID        uint64 `json:"id"`
	CircleID  int64  `json:"circle_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
	Headline  string `json:"headline"`
	Location  string `json:"location"`
	Website   string `json:"website"`
	Twitter   string `json:"twitter"`
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`

	Level             int     `json:"level"`
	TotalPoints       int     `json:"total_points"`
	PointsToNextLevel int     `json:"points_to_next_level"`
	LevelProgress     float64 `json:"level_progress"`

	PostsCount    int     `json:"posts_count"`
	CommentsCount int     `json:"comments_count"`
	ActivityScore float64 `json:"activity_score"`

	Badges []badge.Badge `json:"badges"`
	Spaces []space.Space `json:"spaces"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileRepository 用户聚合视图仓库
// 本地行优先，本地没有时从社区平台按邮箱拉取并落库（写穿）
type ProfileRepository struct {
	users      *UserRepository
	engagement *EngagementRepository
	gamify     *GamificationRepository
	circle     *circle.Client
}

// NewProfileRepository 创建仓库实例
func NewProfileRepository(circleClient *circle.Client) *ProfileRepository {
	return &ProfileRepository{
		users:      NewUserRepository(),
		engagement: NewEngagementRepository(),
		gamify:     NewGamificationRepository(),
		circle:     circleClient,
	}
}

// ResolveByEmail 生成统一的用户视图
//
// 本地有资料行则直接聚合；没有则回源社区平台，首次拉取顺带落库。
// 平台查无此人时透传 circle.ErrNotMember，由控制器映射为 404。
func (r *ProfileRepository) ResolveByEmail(ctx context.Context, email string) (*ProfileView, error) {
	profile, err := r.users.GetByEmail(ctx, email)
	if err == nil {
		return r.buildView(ctx, profile)
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	if r.circle == nil {
		return nil, circle.ErrNotMember
	}

	// 本地没有，回源社区平台
	member, err := r.circle.GetMemberByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	profile = memberToProfile(member)
	if err := r.users.UpsertByCircleID(ctx, profile); err != nil {
		logger.ErrorString("用户聚合", "首次落库", err.Error())
		// 落库失败不阻塞视图返回，下次请求会重试写入
	} else if profile.ID == 0 {
		// 冲突更新路径下主键不会回填，重查一次拿到规范行
		if stored, err := r.users.GetByEmail(ctx, member.Email); err == nil {
			profile = stored
		}
	}
	if profile.ID != 0 {
		if err := r.engagement.SyncFromMember(ctx, profile.ID, member); err != nil {
			logger.ErrorString("用户聚合", "同步互动数据", err.Error())
		}
	}

	return r.buildView(ctx, profile)
}

// buildView 从本地各表聚合出统一视图
// 游戏化与活跃度行都是惰性创建，读不到时用默认值兜底
func (r *ProfileRepository) buildView(ctx context.Context, profile *user.UserProfile) (*ProfileView, error) {
	view := &ProfileView{
		ID:        profile.ID,
		CircleID:  profile.CircleID,
		Email:     profile.Email,
		Name:      profile.Name,
		AvatarURL: profile.AvatarURL,
		Bio:       profile.Bio,
		Headline:  profile.Headline,
		Location:  profile.Location,
		Website:   profile.Website,
		Twitter:   profile.Twitter,
		LinkedIn:  profile.LinkedIn,
		Instagram: profile.Instagram,
		Badges:    []badge.Badge{},
		Spaces:    []space.Space{},
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}

	if state, err := r.gamify.GetOrCreate(ctx, profile.ID); err == nil {
		view.Level = state.CurrentLevel
		view.TotalPoints = state.TotalPoints
		view.PointsToNextLevel = state.PointsToNextLevel
		view.LevelProgress = state.LevelProgress
	} else {
		logger.ErrorString("用户聚合", "读取游戏化状态", err.Error())
		view.Level = 1
		view.PointsToNextLevel = 500
	}

	if record, err := r.engagement.GetOrCreateActivity(ctx, profile.ID); err == nil {
		view.PostsCount = record.PostsCount
		view.CommentsCount = record.CommentsCount
		view.ActivityScore = record.ActivityScore
	} else {
		logger.ErrorString("用户聚合", "读取活跃度", err.Error())
	}

	if badges, err := r.engagement.ListBadges(ctx, profile.ID); err == nil {
		view.Badges = badges
	}
	if spaces, err := r.engagement.ListSpaces(ctx, profile.ID); err == nil {
		view.Spaces = spaces
	}

	return view, nil
}

// memberToProfile 把社区平台的成员数据映射为本地资料行
func memberToProfile(member *circle.Member) *user.UserProfile {
	return &user.UserProfile{
		CircleID:  member.ID,
		Email:     member.Email,
		Name:      member.Name,
		AvatarURL: member.AvatarURL,
		Bio:       member.Bio,
		Headline:  member.Headline,
		Location:  member.Location,
		Website:   member.Website,
	}
}
