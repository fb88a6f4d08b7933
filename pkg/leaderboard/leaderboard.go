// Package leaderboard 排行榜的排序与名次计算
//
// 纯内存计算：调用方负责按筛选条件装载条目，这里只做排序、
// 截断和调用者名次统计，方便单测覆盖。
package leaderboard

import "sort"

// TopLimit 榜单最多展示的名次
const TopLimit = 100

// Entry 参与排名的一条记录
type Entry struct {
	ProfileID uint64 `json:"profile_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Level     int    `json:"level"`
	XP        int    `json:"xp"`
}

// RankedEntry 带名次的条目
type RankedEntry struct {
	Rank int `json:"rank"`
	Entry
}

// CallerStats 调用者自己的名次信息，即使没进前 100 也要返回
type CallerStats struct {
	Rank       int     `json:"rank"`
	XP         int     `json:"xp"`
	Percentile float64 `json:"percentile"`
	GapToNext  int     `json:"gap_to_next"` // 追上前一名还差多少 XP，第一名为 0
}

// Board 排行榜计算结果
type Board struct {
	Entries []RankedEntry `json:"entries"`
	Caller  *CallerStats  `json:"caller,omitempty"`
	Total   int           `json:"total"`
}

// Rank 对条目排序并计算名次
//
// dropZero 为 true 时（周榜/月榜）剔除窗口内 XP 为 0 的用户。
// 排序按 XP 降序，同分时保持输入顺序（稳定排序，名次依旧逐一递增）。
func Rank(entries []Entry, callerID uint64, dropZero bool) Board {
	pool := entries
	if dropZero {
		pool = make([]Entry, 0, len(entries))
		for _, e := range entries {
			if e.XP > 0 {
				pool = append(pool, e)
			}
		}
	} else {
		pool = append([]Entry(nil), entries...)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].XP > pool[j].XP
	})

	ranked := make([]RankedEntry, len(pool))
	var caller *CallerStats
	for i, e := range pool {
		ranked[i] = RankedEntry{Rank: i + 1, Entry: e}

		if callerID != 0 && e.ProfileID == callerID {
			caller = &CallerStats{
				Rank: i + 1,
				XP:   e.XP,
			}
			if i > 0 {
				caller.GapToNext = pool[i-1].XP - e.XP
			}
		}
	}

	total := len(pool)
	if caller != nil && total > 0 {
		caller.Percentile = float64(total-caller.Rank) / float64(total) * 100
	}

	board := Board{
		Entries: ranked,
		Caller:  caller,
		Total:   total,
	}
	if len(board.Entries) > TopLimit {
		board.Entries = board.Entries[:TopLimit]
	}
	return board
}
