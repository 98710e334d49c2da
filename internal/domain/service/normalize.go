package service

import (
	"math"
	"strconv"
	"strings"

	"wallet-flow-analyzer/internal/domain/entity"
)

const defaultTokenDecimals = 18

// epochMillis parses a raw feed timestamp into epoch milliseconds. Feeds
// disagree on units: a value of at most 10 digits is epoch seconds, anything
// longer is already milliseconds. Returns ok=false for unparseable input;
// callers must exclude such records from their own computation.
func epochMillis(raw string) (int64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if len(raw) <= 10 {
		v *= 1000
	}
	return int64(v), true
}

// scaledValue converts a transfer's raw integer amount into token units,
// dividing by 10^tokenDecimal. Missing or malformed decimals default to 18;
// an unparseable value degrades to 0.
func scaledValue(t entity.Transfer) float64 {
	decimals, err := strconv.Atoi(t.TokenDecimal)
	if err != nil {
		decimals = defaultTokenDecimals
	}
	v, err := strconv.ParseFloat(t.Value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return v / math.Pow(10, float64(decimals))
}

// sameAddress compares two account addresses case-insensitively
func sameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

// round2 rounds a display value to 2 decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
