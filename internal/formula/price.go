package formula

import "math"

// UpgradePriceStep multiplies an upgrade's price after each purchased tier.
const UpgradePriceStep = 1.5

// NextPurchasePrice compounds a producer price by growthRate, truncating.
// The result is always at least current so prices never shrink.
func NextPurchasePrice(current int64, growthRate float64) int64 {
	next := int64(math.Floor(float64(current) * (1 + growthRate)))
	if next < current {
		return current
	}
	return next
}

// NextUpgradePrice returns the price of the tier after one priced at current.
func NextUpgradePrice(current int64) int64 {
	return NextPurchasePrice(current, UpgradePriceStep-1)
}

// Floor truncates a non-negative float quantity to an integer amount.
func Floor(v float64) int64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(v))
}
