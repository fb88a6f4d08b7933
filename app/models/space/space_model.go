// Package space 社区空间归属模型
package space

import (
	"arena/app/models"
)

// Space 用户加入的一个社区空间
type Space struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint64 `gorm:"index;uniqueIndex:idx_user_spaces_profile_space" json:"profile_id"`
	SpaceID   int64  `gorm:"uniqueIndex:idx_user_spaces_profile_space" json:"space_id"`
	Name      string `gorm:"type:varchar(255)" json:"name"`
	Slug      string `gorm:"type:varchar(255)" json:"slug"`

	models.CommonTimestampsField
}

// TableName 表名
func (Space) TableName() string {
	return "user_spaces"
}
