package repositories

import (
	"context"
	"fmt"
	"time"

	"arena/app/models/user"
	"arena/pkg/app"
	"arena/pkg/database"
	"arena/pkg/leaderboard"

	"gorm.io/gorm"
)

// 排行榜筛选口径
const (
	FilterGlobal = "global" // 全量累计 XP
	FilterWeek   = "week"   // 本周（周一起算）流水合计
	FilterMonth  = "month"  // 本月流水合计
	FilterLevel  = "level"  // 与调用者同等级的用户
)

// LeaderboardRepository 排行榜数据装载
// 每次请求全表扫描后在内存里排序，量级在社区规模下可以接受
type LeaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository 创建仓库实例
func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{
		db: database.DB,
	}
}

// entryRow 装载查询结果的中间结构
type entryRow struct {
	ProfileID uint64
	Name      string
	AvatarURL string
	Level     int
	XP        int
}

// Compute 按筛选口径装载条目并计算榜单
func (r *LeaderboardRepository) Compute(ctx context.Context, filter string, caller *user.UserProfile) (leaderboard.Board, error) {
	var (
		rows []entryRow
		err  error
	)

	switch filter {
	case FilterWeek:
		rows, err = r.windowedRows(ctx, startOfWeek(app.TimenowInTimezone()))
	case FilterMonth:
		rows, err = r.windowedRows(ctx, startOfMonth(app.TimenowInTimezone()))
	case FilterLevel:
		rows, err = r.levelRows(ctx, caller)
	case FilterGlobal, "":
		rows, err = r.lifetimeRows(ctx)
	default:
		return leaderboard.Board{}, fmt.Errorf("unknown leaderboard filter: %s", filter)
	}
	if err != nil {
		return leaderboard.Board{}, err
	}

	entries := make([]leaderboard.Entry, len(rows))
	for i, row := range rows {
		entries[i] = leaderboard.Entry{
			ProfileID: row.ProfileID,
			Name:      row.Name,
			AvatarURL: row.AvatarURL,
			Level:     row.Level,
			XP:        row.XP,
		}
	}

	var callerID uint64
	if caller != nil {
		callerID = caller.ID
	}
	timeFiltered := filter == FilterWeek || filter == FilterMonth
	return leaderboard.Rank(entries, callerID, timeFiltered), nil
}

// lifetimeRows 全量累计 XP
func (r *LeaderboardRepository) lifetimeRows(ctx context.Context) ([]entryRow, error) {
	var rows []entryRow
	err := r.db.WithContext(ctx).
		Table("user_profiles AS p").
		Select("p.id AS profile_id, p.name, p.avatar_url, " +
			"COALESCE(g.current_level, 1) AS level, COALESCE(g.total_points, 0) AS xp").
		Joins("LEFT JOIN user_gamification g ON g.profile_id = p.id").
		Scan(&rows).Error
	return rows, err
}

// windowedRows 按流水时间窗口合计 XP
func (r *LeaderboardRepository) windowedRows(ctx context.Context, since time.Time) ([]entryRow, error) {
	var rows []entryRow
	err := r.db.WithContext(ctx).
		Table("user_profiles AS p").
		Select("p.id AS profile_id, p.name, p.avatar_url, "+
			"COALESCE(g.current_level, 1) AS level, COALESCE(t.xp, 0) AS xp").
		Joins("LEFT JOIN user_gamification g ON g.profile_id = p.id").
		Joins("LEFT JOIN (SELECT profile_id, SUM(amount) AS xp FROM user_xp_transactions "+
			"WHERE created_at >= ? GROUP BY profile_id) t ON t.profile_id = p.id", since).
		Scan(&rows).Error
	return rows, err
}

// levelRows 只保留与调用者同等级的用户，按累计 XP 排名
func (r *LeaderboardRepository) levelRows(ctx context.Context, caller *user.UserProfile) ([]entryRow, error) {
	if caller == nil {
		return r.lifetimeRows(ctx)
	}

	callerLevel := 1
	if state, err := NewGamificationRepository().GetOrCreate(ctx, caller.ID); err == nil {
		callerLevel = state.CurrentLevel
	}

	var rows []entryRow
	err := r.db.WithContext(ctx).
		Table("user_profiles AS p").
		Select("p.id AS profile_id, p.name, p.avatar_url, "+
			"g.current_level AS level, g.total_points AS xp").
		Joins("INNER JOIN user_gamification g ON g.profile_id = p.id").
		Where("g.current_level = ?", callerLevel).
		Scan(&rows).Error
	return rows, err
}

// startOfWeek 本周一零点
func startOfWeek(now time.Time) time.Time {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // 周日算上一周的第 7 天
	}
	day := now.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}

// startOfMonth 本月一号零点
func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
