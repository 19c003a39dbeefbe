// internal/domain/pricing/shipping.go
package pricing

import "math"

// ShippingCalculator computes delivery fees from distance.
// Fees are in satang.
type ShippingCalculator struct {
	baseFee  int64
	perKmFee int64
}

// NewShippingCalculator creates a calculator with the shop's fee schedule
func NewShippingCalculator(baseFee, perKmFee int64) *ShippingCalculator {
	return &ShippingCalculator{baseFee: baseFee, perKmFee: perKmFee}
}

// Quote returns the delivery fee for a distance.
//
// A distance of zero or less means the shopper has not entered one yet, so the
// fee is zero; checkout readiness separately requires a positive distance
// before an order can be placed. An active free-shipping coupon waives the fee
// entirely as long as its minimum subtotal still holds. The per-km component
// is computed at full precision and rounded to the nearest satang once.
func (s *ShippingCalculator) Quote(distanceKm float64, applied *AppliedCoupon, subtotal int64) int64 {
	if distanceKm <= 0 {
		return 0
	}

	if applied != nil && applied.Kind == KindFreeShipping && subtotal >= applied.MinimumSubtotal {
		return 0
	}

	return s.baseFee + int64(math.Round(float64(s.perKmFee)*distanceKm))
}
