package migrations

import (
	"arena/app/models/activity"
	"arena/app/models/badge"
	"arena/app/models/dailylogin"
	"arena/app/models/gamification"
	"arena/app/models/space"
	"arena/app/models/user"
	"arena/app/models/xptransaction"
)

// RegisterTables 返回需要迁移的表的模型列表
func RegisterTables() []interface{} {
	return []interface{}{
		&user.UserProfile{},
		&gamification.Gamification{},
		&activity.Activity{},
		&badge.Badge{},
		&space.Space{},
		&dailylogin.DailyLogin{},
		&xptransaction.XpTransaction{},
	}
}
