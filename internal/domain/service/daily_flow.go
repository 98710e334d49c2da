package service

import (
	"fmt"
	"time"

	"wallet-flow-analyzer/internal/domain/entity"
)

// flowWindowDays is the trailing window length for daily flows and the
// balance curve. The M/D day label does not disambiguate by year, which is
// only safe while this stays well under a year.
const flowWindowDays = 10

// buildDailyFlows buckets transfers into the trailing window of calendar
// days ending on now's date. The result always has exactly flowWindowDays
// entries in chronological order; days without activity stay zero-filled.
func buildDailyFlows(transfers []entity.Transfer, address string, now time.Time) []entity.DailyFlow {
	flows := make([]entity.DailyFlow, 0, flowWindowDays)
	index := make(map[string]*entity.DailyFlow, flowWindowDays)
	for i := flowWindowDays - 1; i >= 0; i-- {
		label := dayLabel(now.AddDate(0, 0, -i))
		flows = append(flows, entity.DailyFlow{Day: label})
		index[label] = &flows[len(flows)-1]
	}

	cutoff := now.Add(-flowWindowDays * 24 * time.Hour).UnixMilli()
	for _, t := range transfers {
		ms, ok := epochMillis(t.TimeStamp)
		if !ok || ms < cutoff {
			continue
		}
		bucket, ok := index[dayLabel(time.UnixMilli(ms).In(now.Location()))]
		if !ok {
			continue
		}
		v := scaledValue(t)
		switch {
		case sameAddress(t.To, address):
			bucket.Received += v
		case sameAddress(t.From, address):
			bucket.Sent += v
		}
		bucket.Net = bucket.Received - bucket.Sent
	}
	return flows
}

func dayLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}
