// Package xptransaction XP 流水账模型
package xptransaction

import (
	"arena/app/models"
)

// 交易类型
const (
	TypeDailyLogin = "daily_login" // 每日签到
	TypeBadge      = "badge"       // 徽章奖励
	TypeContest    = "contest"     // 比赛奖励
)

// XpTransaction 一条只追加的 XP 流水
// ReferenceID 指向产生这条流水的来源行（如签到记录）
type XpTransaction struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID   uint64 `gorm:"index" json:"profile_id"`
	Type        string `gorm:"type:varchar(20);index" json:"type"`
	Amount      int    `json:"amount"`
	Description string `gorm:"type:text" json:"description"`
	ReferenceID uint64 `gorm:"default:0" json:"reference_id"`

	models.CommonTimestampsField
}

// TableName 表名
func (XpTransaction) TableName() string {
	return "user_xp_transactions"
}
