package service

import (
	"sort"
	"time"

	"wallet-flow-analyzer/internal/domain/entity"
)

// balanceIndex is an immutable sorted view of the wallet's signed balance
// deltas. It is built once per report and answers "total delta strictly
// after t" via binary search over the sorted timestamps plus a suffix-sum
// array.
type balanceIndex struct {
	times  []int64
	suffix []float64
}

func newBalanceIndex(transfers []entity.Transfer, address string) *balanceIndex {
	type event struct {
		ms    int64
		delta float64
	}
	events := make([]event, 0, len(transfers))
	for _, t := range transfers {
		ms, ok := epochMillis(t.TimeStamp)
		if !ok {
			continue
		}
		var delta float64
		switch {
		case sameAddress(t.To, address):
			delta = scaledValue(t)
		case sameAddress(t.From, address):
			delta = -scaledValue(t)
		}
		events = append(events, event{ms: ms, delta: delta})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ms < events[j].ms })

	idx := &balanceIndex{
		times:  make([]int64, len(events)),
		suffix: make([]float64, len(events)+1),
	}
	for i, e := range events {
		idx.times[i] = e.ms
	}
	for i := len(events) - 1; i >= 0; i-- {
		idx.suffix[i] = idx.suffix[i+1] + events[i].delta
	}
	return idx
}

// deltaAfter returns the sum of deltas for events strictly later than ms
func (idx *balanceIndex) deltaAfter(ms int64) float64 {
	i := sort.Search(len(idx.times), func(i int) bool { return idx.times[i] > ms })
	return idx.suffix[i]
}

// buildBalanceCurve reconstructs the wallet's end-of-day balance for each
// day of the trailing window by working backward from currentBalance:
// balance at the end of a day is currentBalance minus every delta that
// happened after that instant. Reconstructed balances are clamped at zero; a
// negative value means untracked transfers drifted the reconstruction, which
// the clamp masks rather than corrects. The newest point always equals
// currentBalance.
func buildBalanceCurve(transfers []entity.Transfer, address string, currentBalance float64, now time.Time) []entity.BalancePoint {
	idx := newBalanceIndex(transfers, address)
	points := make([]entity.BalancePoint, 0, flowWindowDays)
	for i := flowWindowDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 999000000, day.Location())
		balance := currentBalance - idx.deltaAfter(endOfDay.UnixMilli())
		if balance < 0 {
			balance = 0
		}
		points = append(points, entity.BalancePoint{Day: dayLabel(day), Balance: balance})
	}
	return points
}
