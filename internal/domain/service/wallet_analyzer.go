package service

import (
	"strings"
	"time"

	"wallet-flow-analyzer/internal/domain/entity"
	"wallet-flow-analyzer/internal/infrastructure/logger"

	"github.com/axiomhq/hyperloglog"
	"go.uber.org/zap"
)

// WalletAnalyzer derives the full analytics report for one wallet from its
// raw transfer collection. It is a pure function of its inputs plus the
// caller-supplied clock value; two runs over the same collection with the
// same now produce identical reports.
type WalletAnalyzer struct {
	buySharesMarker string
	sharesContract  string
	logger          *logger.Logger
}

// NewWalletAnalyzer creates a new wallet analyzer. buySharesMarker is the
// functionName substring that tags a batched share purchase; sharesContract
// is the contract such transfers must be addressed to.
func NewWalletAnalyzer(buySharesMarker, sharesContract string, logger *logger.Logger) *WalletAnalyzer {
	return &WalletAnalyzer{
		buySharesMarker: buySharesMarker,
		sharesContract:  sharesContract,
		logger:          logger.WithComponent("wallet-analyzer"),
	}
}

// Analyze runs every analytics pass over the transfer collection and merges
// the results into one report. Malformed records never fail the run; each
// pass excludes them locally and they surface in the report's skipped list.
func (wa *WalletAnalyzer) Analyze(transfers []entity.Transfer, address string, now time.Time) *entity.WalletReport {
	var (
		totalReceived     float64
		totalSent         float64
		receiveCount      int
		sendCount         int
		buySharesTotal    float64
		buySharesCount    int
		balanceTenDaysAgo float64
		netChange         float64
		earliest          int64
		haveEarliest      bool
		skipped           []entity.SkippedTransfer
	)
	counterparties := hyperloglog.New16()
	cutoff := now.Add(-flowWindowDays * 24 * time.Hour).UnixMilli()

	for _, t := range transfers {
		v := scaledValue(t)
		received := sameAddress(t.To, address)
		sent := !received && sameAddress(t.From, address)

		// Lifetime totals cover the entire collection, timestamps included
		// or not.
		switch {
		case received:
			totalReceived += v
			receiveCount++
			counterparties.Insert([]byte(strings.ToLower(t.From)))
		case sent:
			totalSent += v
			sendCount++
			counterparties.Insert([]byte(strings.ToLower(t.To)))
		}

		if wa.isBuyShares(t) {
			buySharesTotal += v
			buySharesCount++
		}

		ms, ok := epochMillis(t.TimeStamp)
		if !ok {
			skipped = append(skipped, entity.SkippedTransfer{Hash: t.Hash, Reason: "unparseable timestamp"})
			continue
		}
		if !haveEarliest || ms < earliest {
			earliest = ms
			haveEarliest = true
		}

		var signed float64
		switch {
		case received:
			signed = v
		case sent:
			signed = -v
		}
		// balanceTenDaysAgo deliberately mirrors the original's second,
		// independent code path; the balance curve reconstructs the same
		// figure from the other direction.
		if ms < cutoff {
			balanceTenDaysAgo += signed
		} else {
			netChange += signed
		}
	}

	currentBalance := totalReceived - totalSent

	created := "Unknown"
	if haveEarliest {
		created = time.UnixMilli(earliest).In(now.Location()).Format("Jan 2, 2006")
	}

	report := &entity.WalletReport{
		Summary: entity.WalletSummary{
			Address:              truncateAddress(address),
			TotalReceived:        round2(totalReceived),
			TotalSent:            round2(totalSent),
			NetFlow:              round2(totalReceived - totalSent),
			TxCount:              len(transfers),
			ReceiveCount:         receiveCount,
			SendCount:            sendCount,
			CurrentBalance:       round2(currentBalance),
			BalanceTenDaysAgo:    round2(balanceTenDaysAgo),
			NetChangeLast10Days:  round2(netChange),
			BuySharesTotal:       round2(buySharesTotal),
			BuySharesCount:       buySharesCount,
			ActivityStreakDays:   activityStreak(transfers, now),
			WalletCreated:        created,
			UniqueCounterparties: counterparties.Estimate(),
		},
		DailyFlows:   buildDailyFlows(transfers, address, now),
		BalanceCurve: buildBalanceCurve(transfers, address, currentBalance, now),
		Skipped:      skipped,
		GeneratedAt:  now,
	}

	wa.logger.Debug("Analyzed wallet transfers",
		zap.String("address", address),
		zap.Int("transfers", len(transfers)),
		zap.Int("skipped", len(skipped)),
		zap.Int("streak_days", report.Summary.ActivityStreakDays))

	return report
}

// isBuyShares reports whether the transfer is a batched share purchase:
// tagged by the marker in functionName and addressed to the designated
// shares contract, regardless of which side the subject is on.
func (wa *WalletAnalyzer) isBuyShares(t entity.Transfer) bool {
	if wa.buySharesMarker == "" || t.FunctionName == "" {
		return false
	}
	if !strings.Contains(strings.ToLower(t.FunctionName), strings.ToLower(wa.buySharesMarker)) {
		return false
	}
	return sameAddress(t.To, wa.sharesContract)
}

// truncateAddress shortens an address to its display form (0x1234...abcd)
func truncateAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
