package repositories

import (
	"context"
	"errors"

	"arena/app/models/activity"
	"arena/app/models/badge"
	"arena/app/models/space"
	"arena/pkg/circle"
	"arena/pkg/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository 社区互动数据（活跃度/徽章/空间）仓库
type EngagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository 创建仓库实例
func NewEngagementRepository() *EngagementRepository {
	return &EngagementRepository{
		db: database.DB,
	}
}

// GetOrCreateActivity 获取活跃度记录，没有则惰性创建空记录
func (r *EngagementRepository) GetOrCreateActivity(ctx context.Context, profileID uint64) (*activity.Activity, error) {
	var record activity.Activity
	err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record = activity.Activity{ProfileID: profileID}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if database.IsDuplicateKeyError(err) {
			if retry := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&record).Error; retry == nil {
				return &record, nil
			}
		}
		return nil, err
	}
	return &record, nil
}

// SyncFromMember 用社区平台的成员数据刷新活跃度、徽章和空间
func (r *EngagementRepository) SyncFromMember(ctx context.Context, profileID uint64, member *circle.Member) error {
	record, err := r.GetOrCreateActivity(ctx, profileID)
	if err != nil {
		return err
	}

	record.FromMember(member)
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return err
	}

	if err := r.SyncBadges(ctx, profileID, member.Tags); err != nil {
		return err
	}
	return r.SyncSpaces(ctx, profileID, member.Spaces)
}

// SyncBadges 按成员标签幂等写入徽章，(profile_id, badge_id) 冲突时跳过
func (r *EngagementRepository) SyncBadges(ctx context.Context, profileID uint64, tags []circle.MemberTag) error {
	if len(tags) == 0 {
		return nil
	}

	badges := make([]badge.Badge, len(tags))
	for i, tag := range tags {
		badges[i] = badge.Badge{
			ProfileID: profileID,
			BadgeID:   tag.ID,
			Name:      tag.Name,
		}
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(&badges).Error
}

// SyncSpaces 幂等写入空间归属
func (r *EngagementRepository) SyncSpaces(ctx context.Context, profileID uint64, memberSpaces []circle.MemberSpace) error {
	if len(memberSpaces) == 0 {
		return nil
	}

	spaces := make([]space.Space, len(memberSpaces))
	for i, s := range memberSpaces {
		spaces[i] = space.Space{
			ProfileID: profileID,
			SpaceID:   s.ID,
			Name:      s.Name,
			Slug:      s.Slug,
		}
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "space_id"}},
		DoNothing: true,
	}).Create(&spaces).Error
}

// ListBadges 获取用户的全部徽章
func (r *EngagementRepository) ListBadges(ctx context.Context, profileID uint64) ([]badge.Badge, error) {
	var badges []badge.Badge
	err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Find(&badges).Error
	return badges, err
}

// ListSpaces 获取用户加入的空间
func (r *EngagementRepository) ListSpaces(ctx context.Context, profileID uint64) ([]space.Space, error) {
	var spaces []space.Space
	err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Find(&spaces).Error
	return spaces, err
}
