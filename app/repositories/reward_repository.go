package repositories

import (
	"context"
	"errors"
	"fmt"

	"arena/app/models/dailylogin"
	"arena/app/models/gamification"
	"arena/app/models/xptransaction"
	"arena/pkg/app"
	"arena/pkg/database"
	"arena/pkg/logger"
	"arena/pkg/reward"

	"gorm.io/gorm"
)

// ErrAlreadyClaimed 今天的奖励已领取
var ErrAlreadyClaimed = errors.New("already claimed today")

// WrongDayError 请求领取的天数与判定不一致
type WrongDayError struct {
	Expected int
}

func (e *WrongDayError) Error() string {
	return fmt.Sprintf("wrong day: expected day %d", e.Expected)
}

// RewardRepository 每日奖励仓库，承载领取流程的多步写入
type RewardRepository struct {
	db           *gorm.DB
	gamification *GamificationRepository
}

// NewRewardRepository 创建仓库实例
func NewRewardRepository() *RewardRepository {
	return &RewardRepository{
		db:           database.DB,
		gamification: NewGamificationRepository(),
	}
}

// RewardStatus 奖励页所需的状态
type RewardStatus struct {
	NextDay        int                     `json:"next_day"`
	AlreadyClaimed bool                    `json:"already_claimed"`
	Streak         int                     `json:"streak"`
	Rewards        []DayReward             `json:"rewards"`
	History        []dailylogin.DailyLogin `json:"history"`
}

// DayReward 周期内某一天的奖励额度
type DayReward struct {
	Day     int `json:"day"`
	BaseXP  int `json:"base_xp"`
	BonusXP int `json:"bonus_xp"`
}

// ClaimResult 领取成功的结果
// Persisted 为 false 表示部分写入失败，客户端看到的仍是成功
type ClaimResult struct {
	Day         int  `json:"day"`
	XpEarned    int  `json:"xp_earned"`
	BonusXp     int  `json:"bonus_xp"`
	Streak      int  `json:"streak"`
	TotalPoints int  `json:"total_points"`
	Level       int  `json:"level"`
	Persisted   bool `json:"-"`
}

// LatestLogin 用户最近一次签到记录，没有时返回 nil
func (r *RewardRepository) LatestLogin(ctx context.Context, profileID uint64) (*dailylogin.DailyLogin, error) {
	var login dailylogin.DailyLogin
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("login_date DESC").
		First(&login).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &login, nil
}

// Status 计算奖励页状态：下一个可领取的天数与整张奖励表
func (r *RewardRepository) Status(ctx context.Context, profileID uint64) (*RewardStatus, error) {
	latest, err := r.LatestLogin(ctx, profileID)
	if err != nil {
		// 读取失败时按无历史处理，页面不因数据库抖动而白屏
		logger.ErrorString("每日奖励", "查询签到历史", err.Error())
		latest = nil
	}

	next := reward.NextClaim(toClaimed(latest), app.TimenowInTimezone())

	status := &RewardStatus{
		NextDay:        next.Day,
		AlreadyClaimed: next.AlreadyClaimed,
		Rewards:        rewardTable(),
	}
	if latest != nil {
		status.Streak = latest.StreakDay
	}

	// 最近一周的签到记录，奖励页展示用
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("login_date DESC").
		Limit(reward.CycleDays).
		Find(&status.History).Error; err != nil {
		logger.ErrorString("每日奖励", "查询签到记录", err.Error())
	}

	return status, nil
}

// Claim 领取指定天数的每日奖励
//
// 流程：判定可领取天数 -> 落签到行 -> 落 XP 流水 -> 更新游戏化状态。
// 三次写入之间没有跨步事务，任何一步失败都只记日志并继续，
// 保证客户端视角的领取总能成功（结果的 Persisted 会标记降级）。
func (r *RewardRepository) Claim(ctx context.Context, profileID uint64, day int) (*ClaimResult, error) {
	latest, err := r.LatestLogin(ctx, profileID)
	if err != nil {
		logger.ErrorString("每日奖励", "查询签到历史", err.Error())
		latest = nil
	}

	now := app.TimenowInTimezone()
	next := reward.NextClaim(toClaimed(latest), now)

	if next.AlreadyClaimed {
		return nil, ErrAlreadyClaimed
	}
	if day != next.Day {
		return nil, &WrongDayError{Expected: next.Day}
	}

	baseXP := reward.BaseXP(day)
	bonusXP := reward.BonusXP(day)
	totalXP := baseXP + bonusXP

	result := &ClaimResult{
		Day:       day,
		XpEarned:  totalXP,
		BonusXp:   bonusXP,
		Streak:    day,
		Persisted: true,
	}

	// 1. 落签到行，(profile_id, login_date) 唯一约束兜住并发双击
	login := &dailylogin.DailyLogin{
		ProfileID: profileID,
		LoginDate: reward.DateOf(now),
		StreakDay: day,
		XpEarned:  totalXP,
		BonusXp:   bonusXP,
	}
	if err := r.db.WithContext(ctx).Create(login).Error; err != nil {
		if database.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyClaimed
		}
		logger.ErrorString("每日奖励", "写入签到行", err.Error())
		result.Persisted = false
	}

	// 2. 落 XP 流水，引用签到行
	tx := &xptransaction.XpTransaction{
		ProfileID:   profileID,
		Type:        xptransaction.TypeDailyLogin,
		Amount:      totalXP,
		Description: fmt.Sprintf("Daily login reward - Day %d", day),
		ReferenceID: login.ID,
	}
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		logger.ErrorString("每日奖励", "写入XP流水", err.Error())
		result.Persisted = false
	}

	// 3. 累加 XP 并重算等级
	state, err := r.gamification.GetOrCreate(ctx, profileID)
	if err != nil {
		logger.ErrorString("每日奖励", "读取游戏化状态", err.Error())
		state = gamification.Default(profileID)
		result.Persisted = false
	}
	state.AddPoints(totalXP)
	if err := r.gamification.Save(ctx, state); err != nil {
		logger.ErrorString("每日奖励", "更新游戏化状态", err.Error())
		result.Persisted = false
	}

	result.TotalPoints = state.TotalPoints
	result.Level = state.CurrentLevel

	if !result.Persisted {
		logger.WarnString("每日奖励", "降级",
			fmt.Sprintf("profile:%d day:%d 部分写入失败，账本可能与客户端看到的结果不一致", profileID, day))
	}
	return result, nil
}

// History 按时间倒序返回 XP 流水，进度页使用
func (r *RewardRepository) History(ctx context.Context, profileID uint64, limit int) ([]xptransaction.XpTransaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var transactions []xptransaction.XpTransaction
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

// toClaimed 把签到行转成状态机的输入
func toClaimed(login *dailylogin.DailyLogin) *reward.Claimed {
	if login == nil {
		return nil
	}
	return &reward.Claimed{
		Date:      login.LoginDate,
		StreakDay: login.StreakDay,
	}
}

// rewardTable 整个周期的奖励额度表
func rewardTable() []DayReward {
	table := make([]DayReward, reward.CycleDays)
	for day := 1; day <= reward.CycleDays; day++ {
		table[day-1] = DayReward{
			Day:     day,
			BaseXP:  reward.BaseXP(day),
			BonusXP: reward.BonusXP(day),
		}
	}
	return table
}
