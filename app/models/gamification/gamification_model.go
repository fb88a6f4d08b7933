// Package gamification 用户等级与 XP 模型
package gamification

import (
	"arena/app/models"
	"arena/pkg/reward"
)

// Gamification 用户游戏化状态，与 UserProfile 一对一
// 首次读取时惰性创建：level=1，total_points=0
type Gamification struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint64 `gorm:"uniqueIndex" json:"profile_id"`

	CurrentLevel      int     `gorm:"default:1" json:"current_level"`
	TotalPoints       int     `gorm:"default:0;index" json:"total_points"`
	PointsToNextLevel int     `gorm:"default:500" json:"points_to_next_level"`
	LevelProgress     float64 `gorm:"default:0" json:"level_progress"`

	models.CommonTimestampsField
}

// TableName 表名
func (Gamification) TableName() string {
	return "user_gamification"
}

// Default 新用户的初始游戏化状态
func Default(profileID uint64) *Gamification {
	g := &Gamification{
		ProfileID: profileID,
	}
	g.SetPoints(0)
	return g
}

// AddPoints 增加 XP 并重算派生字段
func (g *Gamification) AddPoints(xp int) {
	g.SetPoints(g.TotalPoints + xp)
}

// SetPoints 覆盖 XP 总量并重算等级派生字段
// 等级公式：level = floor(total/500)+1
func (g *Gamification) SetPoints(total int) {
	g.TotalPoints = total
	g.CurrentLevel = reward.LevelFor(total)
	g.PointsToNextLevel = reward.PointsToNextLevel(total)
	g.LevelProgress = reward.LevelProgress(total)
}
