package entity

import (
	"time"
)

// DailyFlow represents one calendar day of token flow for the subject wallet
type DailyFlow struct {
	Day      string  `json:"day"`
	Received float64 `json:"received"`
	Sent     float64 `json:"sent"`
	Net      float64 `json:"net"`
}

// BalancePoint represents the reconstructed end-of-day balance for one
// calendar day
type BalancePoint struct {
	Day     string  `json:"day"`
	Balance float64 `json:"balance"`
}

// SkippedTransfer records a transfer excluded from a computation and why
type SkippedTransfer struct {
	Hash   string `json:"hash"`
	Reason string `json:"reason"`
}

// WalletSummary represents the aggregate statistics for a wallet
type WalletSummary struct {
	Address              string  `json:"address"`
	TotalReceived        float64 `json:"total_received"`
	TotalSent            float64 `json:"total_sent"`
	NetFlow              float64 `json:"net_flow"`
	TxCount              int     `json:"tx_count"`
	ReceiveCount         int     `json:"receive_count"`
	SendCount            int     `json:"send_count"`
	CurrentBalance       float64 `json:"current_balance"`
	BalanceTenDaysAgo    float64 `json:"balance_ten_days_ago"`
	NetChangeLast10Days  float64 `json:"net_change_last_10_days"`
	BuySharesTotal       float64 `json:"buy_shares_total"`
	BuySharesCount       int     `json:"buy_shares_count"`
	ActivityStreakDays   int     `json:"activity_streak_days"`
	WalletCreated        string  `json:"wallet_created"`
	UniqueCounterparties uint64  `json:"unique_counterparties"`
}

// WalletReport is the engine's single output artifact: the summary plus the
// trailing-window flow buckets and balance curve, with diagnostics for any
// records a pass had to exclude.
type WalletReport struct {
	Summary      WalletSummary     `json:"summary"`
	DailyFlows   []DailyFlow       `json:"daily_flows"`
	BalanceCurve []BalancePoint    `json:"balance_curve"`
	Skipped      []SkippedTransfer `json:"skipped,omitempty"`
	GeneratedAt  time.Time         `json:"generated_at"`
}
