// Package dailylogin 每日签到记录模型
package dailylogin

import (
	"arena/app/models"
)

// DailyLogin 一次成功的每日奖励领取，按自然日一行
// (profile_id, login_date) 唯一，同一天的并发领取靠它兜底
type DailyLogin struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint64 `gorm:"index;uniqueIndex:idx_daily_logins_profile_date" json:"profile_id"`
	LoginDate string `gorm:"type:varchar(10);uniqueIndex:idx_daily_logins_profile_date" json:"login_date"`
	StreakDay int    `json:"streak_day"` // 周期内的天数 1..7
	XpEarned  int    `json:"xp_earned"`  // 含额外奖励的总 XP
	BonusXp   int    `json:"bonus_xp"`

	models.CommonTimestampsField
}

// TableName 表名
func (DailyLogin) TableName() string {
	return "user_daily_logins"
}
