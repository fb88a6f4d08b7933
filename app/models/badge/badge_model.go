// Package badge 用户徽章模型
package badge

import (
	"arena/app/models"
)

// Badge 一条已授予的徽章，来源是社区平台的成员标签
// (profile_id, badge_id) 唯一，保证重复同步时幂等
type Badge struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint64 `gorm:"index;uniqueIndex:idx_user_badges_profile_badge" json:"profile_id"`
	BadgeID   int64  `gorm:"uniqueIndex:idx_user_badges_profile_badge" json:"badge_id"`
	Name      string `gorm:"type:varchar(100)" json:"name"`

	models.CommonTimestampsField
}

// TableName 表名
func (Badge) TableName() string {
	return "user_badges"
}
