// Package user 存放用户资料 Model 相关逻辑
package user

import (
	"arena/app/models"
)

// UserProfile 用户资料模型，身份信息的本地权威记录
// CircleID 在成员真正入驻社区前允许为负数占位值
type UserProfile struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CircleID int64  `gorm:"uniqueIndex" json:"circle_id"`
	Email    string `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Name     string `gorm:"type:varchar(100)" json:"name"`

	AvatarURL string `gorm:"type:text" json:"avatar_url"`
	Bio       string `gorm:"type:text" json:"bio"`
	Headline  string `gorm:"type:varchar(255)" json:"headline"`
	Location  string `gorm:"type:varchar(255)" json:"location"`
	Website   string `gorm:"type:text" json:"website"`
	Twitter   string `gorm:"type:varchar(255)" json:"twitter"`
	LinkedIn  string `gorm:"type:varchar(255)" json:"linkedin"`
	Instagram string `gorm:"type:varchar(255)" json:"instagram"`

	// Google 身份字段
	GoogleID      string `gorm:"type:varchar(64);index" json:"google_id"`
	GooglePicture string `gorm:"type:text" json:"google_picture"`

	models.CommonTimestampsField
}

// TableName 表名
func (UserProfile) TableName() string {
	return "user_profiles"
}

// IsEnrolled 是否已在社区平台拿到真实的成员 ID
func (u *UserProfile) IsEnrolled() bool {
	return u.CircleID > 0
}
