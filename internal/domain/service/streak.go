package service

import (
	"time"

	"wallet-flow-analyzer/internal/domain/entity"
)

// activityStreak counts the consecutive calendar days with at least one
// transfer, walking backward from today. When today has no activity yet the
// walk is allowed to start at yesterday instead, so a streak survives the
// day rollover; beyond that single day of grace the first inactive day ends
// the count.
func activityStreak(transfers []entity.Transfer, now time.Time) int {
	active := make(map[string]struct{}, len(transfers))
	for _, t := range transfers {
		ms, ok := epochMillis(t.TimeStamp)
		if !ok {
			continue
		}
		active[dateKey(time.UnixMilli(ms).In(now.Location()))] = struct{}{}
	}
	if len(active) == 0 {
		return 0
	}

	day := now
	if _, ok := active[dateKey(day)]; !ok {
		day = day.AddDate(0, 0, -1)
		if _, ok := active[dateKey(day)]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := active[dateKey(day)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// dateKey is a full year-month-day key, unlike the M/D display label
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
