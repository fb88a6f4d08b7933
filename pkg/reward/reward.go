// Package reward 每日登录奖励的状态机
//
// 奖励周期为固定的 1..7 天阶梯：连续签到则逐日递进，到第 7 天封顶，
// 中断一天以上则回到第 1 天。所有"今天/昨天"的比较都以
// app.TimenowInTimezone 产生的日期字符串为准。
package reward

import (
	"fmt"
	"time"
)

const (
	// CycleDays 奖励周期天数
	CycleDays = 7
	// LevelStep 每升一级所需的 XP
	LevelStep = 500
	// WeekBonusXP 完成一整周（第 7 天）的额外奖励
	WeekBonusXP = 25
	// StreakBonusXP 连续签到数为 7 的其他倍数时的额外奖励
	StreakBonusXP = 10
	// DateLayout 签到日期的存储格式
	DateLayout = "2006-01-02"
)

// 每日基础 XP 对照表，下标即周期内的天数
var baseXPTable = [CycleDays + 1]int{0, 5, 10, 15, 20, 25, 30, 50}

// BaseXP 返回周期内第 day 天的基础 XP，day 越界时返回 0
func BaseXP(day int) int {
	if day < 1 || day > CycleDays {
		return 0
	}
	return baseXPTable[day]
}

// BonusXP 根据连续签到数计算额外奖励
// 第 7 天 +25；其余 7 的非零倍数 +10（阶梯封顶后实际到不了，
// 但口径保留，便于以后放开周期上限）
func BonusXP(streak int) int {
	if streak == CycleDays {
		return WeekBonusXP
	}
	if streak > 0 && streak%CycleDays == 0 {
		return StreakBonusXP
	}
	return 0
}

// TotalXP 第 day 天签到的总奖励（基础 + 额外）
func TotalXP(day int) int {
	return BaseXP(day) + BonusXP(day)
}

// Claimed 用户最近一次签到记录的摘要
type Claimed struct {
	Date      string // DateLayout 格式
	StreakDay int    // 当次签到时的连续天数（1..7）
}

// Next 下一次可领取的判定结果
type Next struct {
	Day            int  // 允许领取的天数
	AlreadyClaimed bool // 今天是否已领取
}

// NextClaim 根据最近一次签到记录和当前时间，判定本次允许领取的天数
//
// 规则：
//  1. 无签到历史         -> 第 1 天
//  2. 最近签到是今天     -> 已领取，不允许重复
//  3. 最近签到是昨天     -> min(上次连续数+1, 7)
//  4. 中断两天及以上     -> 回到第 1 天
func NextClaim(last *Claimed, now time.Time) Next {
	if last == nil {
		return Next{Day: 1}
	}

	today := DateOf(now)
	yesterday := DateOf(now.AddDate(0, 0, -1))

	switch last.Date {
	case today:
		return Next{Day: last.StreakDay, AlreadyClaimed: true}
	case yesterday:
		day := last.StreakDay + 1
		if day > CycleDays {
			day = CycleDays
		}
		return Next{Day: day}
	default:
		return Next{Day: 1}
	}
}

// DateOf 将时间转为天粒度的日期字符串
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// LevelFor 根据累计 XP 计算等级，500 XP 一级，起始为 1 级
func LevelFor(totalPoints int) int {
	return totalPoints/LevelStep + 1
}

// PointsToNextLevel 距离下一级还差多少 XP
func PointsToNextLevel(totalPoints int) int {
	return LevelStep - totalPoints%LevelStep
}

// LevelProgress 当前等级内的进度百分比（0..100）
func LevelProgress(totalPoints int) float64 {
	return float64(totalPoints%LevelStep) / float64(LevelStep) * 100
}

// WrongDayMessage 领取天数与判定不一致时的提示文案
func WrongDayMessage(expected int) string {
	return fmt.Sprintf("You can only claim Day %d today. Come back tomorrow for the next reward!", expected)
}
