package service

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"wallet-flow-analyzer/internal/domain/entity"
	"wallet-flow-analyzer/internal/infrastructure/logger"
)

const (
	subjectAddr     = "0x1111111111111111111111111111111111111111"
	otherAddr       = "0x2222222222222222222222222222222222222222"
	sharesContract  = "0xCF205808Ed36593aA40a44F10c7f7C2F67d4A4d4"
	buySharesMarker = "buyShares"
	tokensHundred   = "100000000000000000000"
	tokensForty     = "40000000000000000000"
	tokensTen       = "10000000000000000000"
)

// fixedNow pins the clock so every windowed computation is deterministic
var fixedNow = time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)

func transferAt(ts time.Time, from, to, rawValue string) entity.Transfer {
	return entity.Transfer{
		Hash:         fmt.Sprintf("0x%x", ts.UnixNano()),
		From:         from,
		To:           to,
		Value:        rawValue,
		TokenName:    "Test Token",
		TokenSymbol:  "TOK",
		TokenDecimal: "18",
		TimeStamp:    strconv.FormatInt(ts.Unix(), 10),
	}
}

func daysAgo(n int) time.Time {
	return fixedNow.AddDate(0, 0, -n)
}

func newTestAnalyzer(t *testing.T) *WalletAnalyzer {
	t.Helper()
	log, err := logger.NewLogger("error", "production")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return NewWalletAnalyzer(buySharesMarker, sharesContract, log)
}
