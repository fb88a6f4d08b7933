package repositories

import (
	"context"
	"errors"

	"arena/app/models/gamification"
	"arena/pkg/database"

	"gorm.io/gorm"
)

// GamificationRepository 游戏化状态仓库
type GamificationRepository struct {
	db *gorm.DB
}

// NewGamificationRepository 创建仓库实例
func NewGamificationRepository() *GamificationRepository {
	return &GamificationRepository{
		db: database.DB,
	}
}

// GetOrCreate 获取用户的游戏化状态，没有则按默认值惰性创建
func (r *GamificationRepository) GetOrCreate(ctx context.Context, profileID uint64) (*gamification.Gamification, error) {
	var state gamification.Gamification
	err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&state).Error
	if err == nil {
		return &state, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 首次读取，落一行默认状态
	fresh := gamification.Default(profileID)
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		// 并发下可能被别的请求抢先创建，重查一次
		if database.IsDuplicateKeyError(err) {
			if retry := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&state).Error; retry == nil {
				return &state, nil
			}
		}
		return nil, err
	}
	return fresh, nil
}

// Save 保存游戏化状态
func (r *GamificationRepository) Save(ctx context.Context, state *gamification.Gamification) error {
	return r.db.WithContext(ctx).Save(state).Error
}
