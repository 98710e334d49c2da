package service

import (
	"testing"

	"wallet-flow-analyzer/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailyFlowsAlwaysTenBucketsChronological(t *testing.T) {
	flows := buildDailyFlows(nil, subjectAddr, fixedNow)

	require.Len(t, flows, 10)
	assert.Equal(t, "5/11", flows[0].Day)
	assert.Equal(t, "5/20", flows[9].Day)
	for _, f := range flows {
		assert.Zero(t, f.Received)
		assert.Zero(t, f.Sent)
		assert.Zero(t, f.Net)
	}
}

func TestBuildDailyFlowsAccumulatesByDirection(t *testing.T) {
	transfers := []entity.Transfer{
		transferAt(daysAgo(5), otherAddr, subjectAddr, tokensHundred),
		transferAt(daysAgo(1), subjectAddr, otherAddr, tokensForty),
	}

	flows := buildDailyFlows(transfers, subjectAddr, fixedNow)
	require.Len(t, flows, 10)

	received := flows[4] // day offset -5
	assert.InDelta(t, 100, received.Received, 1e-9)
	assert.Zero(t, received.Sent)
	assert.InDelta(t, 100, received.Net, 1e-9)

	sent := flows[8] // day offset -1
	assert.Zero(t, sent.Received)
	assert.InDelta(t, 40, sent.Sent, 1e-9)
	assert.InDelta(t, -40, sent.Net, 1e-9)

	for i, f := range flows {
		if i == 4 || i == 8 {
			continue
		}
		assert.Zero(t, f.Received, "bucket %d", i)
		assert.Zero(t, f.Sent, "bucket %d", i)
	}
}

func TestBuildDailyFlowsNetInvariant(t *testing.T) {
	transfers := []entity.Transfer{
		transferAt(daysAgo(2), otherAddr, subjectAddr, tokensHundred),
		transferAt(daysAgo(2), subjectAddr, otherAddr, tokensForty),
		transferAt(daysAgo(7), otherAddr, subjectAddr, tokensTen),
	}

	for _, f := range buildDailyFlows(transfers, subjectAddr, fixedNow) {
		assert.InDelta(t, f.Received-f.Sent, f.Net, 1e-9)
	}
}

func TestBuildDailyFlowsExcludesOutOfWindowAndInvalid(t *testing.T) {
	old := transferAt(daysAgo(15), otherAddr, subjectAddr, tokensHundred)
	invalid := transferAt(daysAgo(3), otherAddr, subjectAddr, tokensHundred)
	invalid.TimeStamp = "garbage"

	flows := buildDailyFlows([]entity.Transfer{old, invalid}, subjectAddr, fixedNow)
	for _, f := range flows {
		assert.Zero(t, f.Received)
		assert.Zero(t, f.Sent)
	}
}

func TestBuildDailyFlowsAddressMatchIsCaseInsensitive(t *testing.T) {
	upper := transferAt(daysAgo(0), otherAddr, "0x1111111111111111111111111111111111111111", tokensTen)
	upper.To = "0X1111111111111111111111111111111111111111"

	flows := buildDailyFlows([]entity.Transfer{upper}, subjectAddr, fixedNow)
	assert.InDelta(t, 10, flows[9].Received, 1e-9)
}

func TestBuildDailyFlowsIgnoresUnrelatedTransfers(t *testing.T) {
	unrelated := transferAt(daysAgo(1), otherAddr, "0x3333333333333333333333333333333333333333", tokensTen)

	flows := buildDailyFlows([]entity.Transfer{unrelated}, subjectAddr, fixedNow)
	for _, f := range flows {
		assert.Zero(t, f.Received)
		assert.Zero(t, f.Sent)
	}
}
