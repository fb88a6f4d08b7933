// Package activity 社区活跃度镜像模型
package activity

import (
	"arena/app/models"
	"arena/pkg/circle"
)

// Activity 镜像社区平台的互动计数，与 UserProfile 一对一
type Activity struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint64 `gorm:"uniqueIndex" json:"profile_id"`

	PostsCount    int `gorm:"default:0" json:"posts_count"`
	CommentsCount int `gorm:"default:0" json:"comments_count"`

	// 综合活跃度及四个子项
	ActivityScore float64 `gorm:"default:0" json:"activity_score"`
	PostsScore    float64 `gorm:"default:0" json:"posts_score"`
	CommentsScore float64 `gorm:"default:0" json:"comments_score"`
	LikesScore    float64 `gorm:"default:0" json:"likes_score"`
	PresenceScore float64 `gorm:"default:0" json:"presence_score"`

	models.CommonTimestampsField
}

// TableName 表名
func (Activity) TableName() string {
	return "user_activity"
}

// FromMember 用社区平台的成员数据刷新计数
func (a *Activity) FromMember(member *circle.Member) {
	a.PostsCount = member.PostsCount
	a.CommentsCount = member.CommentsCount
	a.ActivityScore = member.ActivityScore.Total
	a.PostsScore = member.ActivityScore.Posts
	a.CommentsScore = member.ActivityScore.Comments
	a.LikesScore = member.ActivityScore.Likes
	a.PresenceScore = member.ActivityScore.Presence
}
