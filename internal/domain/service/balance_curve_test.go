package service

import (
	"testing"

	"wallet-flow-analyzer/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBalanceCurveScenario(t *testing.T) {
	// Received 100 five days ago, sent 40 yesterday; current balance is 60.
	transfers := []entity.Transfer{
		transferAt(daysAgo(5), otherAddr, subjectAddr, tokensHundred),
		transferAt(daysAgo(1), subjectAddr, otherAddr, tokensForty),
	}

	points := buildBalanceCurve(transfers, subjectAddr, 60, fixedNow)
	require.Len(t, points, 10)

	// days -9..-6 predate any activity
	for i := 0; i <= 3; i++ {
		assert.Zero(t, points[i].Balance, "point %d", i)
	}
	// days -5..-2 hold the received 100
	for i := 4; i <= 7; i++ {
		assert.InDelta(t, 100, points[i].Balance, 1e-9, "point %d", i)
	}
	// days -1..0 reflect the 40 sent
	for i := 8; i <= 9; i++ {
		assert.InDelta(t, 60, points[i].Balance, 1e-9, "point %d", i)
	}
}

func TestBuildBalanceCurveNewestPointEqualsCurrentBalance(t *testing.T) {
	transfers := []entity.Transfer{
		transferAt(daysAgo(8), otherAddr, subjectAddr, tokensHundred),
		transferAt(daysAgo(4), subjectAddr, otherAddr, tokensTen),
	}

	points := buildBalanceCurve(transfers, subjectAddr, 90, fixedNow)
	require.Len(t, points, 10)
	assert.Equal(t, float64(90), points[9].Balance)
}

func TestBuildBalanceCurveClampsNegativeReconstruction(t *testing.T) {
	// A large untracked outflow makes the backward walk go negative.
	transfers := []entity.Transfer{
		transferAt(daysAgo(2), otherAddr, subjectAddr, tokensHundred),
	}

	points := buildBalanceCurve(transfers, subjectAddr, 50, fixedNow)
	for i, p := range points {
		assert.GreaterOrEqual(t, p.Balance, float64(0), "point %d", i)
	}
	// Before the inflow the reconstruction would be 50-100 = -50, clamped.
	assert.Zero(t, points[0].Balance)
	assert.Equal(t, float64(50), points[9].Balance)
}

func TestBuildBalanceCurveEmptyCollection(t *testing.T) {
	points := buildBalanceCurve(nil, subjectAddr, 0, fixedNow)
	require.Len(t, points, 10)
	for _, p := range points {
		assert.Zero(t, p.Balance)
	}
}

func TestBalanceIndexDeltaAfter(t *testing.T) {
	transfers := []entity.Transfer{
		transferAt(daysAgo(3), otherAddr, subjectAddr, tokensHundred),
		transferAt(daysAgo(1), subjectAddr, otherAddr, tokensForty),
	}
	idx := newBalanceIndex(transfers, subjectAddr)

	// Query before both events sees the full signed sum.
	assert.InDelta(t, 60, idx.deltaAfter(daysAgo(4).UnixMilli()), 1e-9)
	// Between the events only the outflow remains.
	assert.InDelta(t, -40, idx.deltaAfter(daysAgo(2).UnixMilli()), 1e-9)
	// After both events nothing remains.
	assert.Zero(t, idx.deltaAfter(fixedNow.UnixMilli()))
}

func TestBalanceIndexIgnoresInvalidTimestamps(t *testing.T) {
	bad := transferAt(daysAgo(1), otherAddr, subjectAddr, tokensHundred)
	bad.TimeStamp = "not-a-timestamp"

	idx := newBalanceIndex([]entity.Transfer{bad}, subjectAddr)
	assert.Zero(t, idx.deltaAfter(daysAgo(9).UnixMilli()))
}
