package repositories

import (
	"context"
	"errors"

	"arena/app/models/activity"
	"arena/app/models/badge"
	"arena/app/models/dailylogin"
	"arena/app/models/gamification"
	"arena/app/models/space"
	"arena/app/models/user"
	"arena/app/models/xptransaction"
	"arena/pkg/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProfileNotFound 本地没有对应的用户资料
var ErrProfileNotFound = errors.New("user profile not found")

// UserRepository 用户资料仓库
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建仓库实例
func NewUserRepository() *UserRepository {
	return &UserRepository{
		db: database.DB,
	}
}

// GetByEmail 按邮箱获取用户资料
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.UserProfile, error) {
	var profile user.UserProfile
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetByID 按主键获取用户资料
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*user.UserProfile, error) {
	var profile user.UserProfile
	err := r.db.WithContext(ctx).First(&profile, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Create 创建用户资料
func (r *UserRepository) Create(ctx context.Context, profile *user.UserProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// UpsertByCircleID 按 circle_id 幂等写入
// 已存在则更新资料字段，主键和建档时间保持不变
func (r *UserRepository) UpsertByCircleID(ctx context.Context, profile *user.UserProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "circle_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "name", "avatar_url", "bio", "headline", "location",
			"website", "twitter", "linked_in", "instagram",
			"google_id", "google_picture", "updated_at",
		}),
	}).Create(profile).Error
}

// Save 保存资料变更
func (r *UserRepository) Save(ctx context.Context, profile *user.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// ListAll 返回全部用户资料，排行榜与定时同步使用
func (r *UserRepository) ListAll(ctx context.Context) ([]user.UserProfile, error) {
	var profiles []user.UserProfile
	err := r.db.WithContext(ctx).Find(&profiles).Error
	return profiles, err
}

// DeleteCascade 注销账号，按外键依赖的固定顺序先删子表再删资料
func (r *UserRepository) DeleteCascade(ctx context.Context, profileID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&xptransaction.XpTransaction{},
			&dailylogin.DailyLogin{},
			&badge.Badge{},
			&space.Space{},
			&activity.Activity{},
			&gamification.Gamification{},
		} {
			if err := tx.Where("profile_id = ?", profileID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&user.UserProfile{}, profileID).Error
	})
}
