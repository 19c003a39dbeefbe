// internal/domain/pricing/aggregator.go
package pricing

import (
	"errors"
	"fmt"
)

// Quote is the full pricing breakdown for a checkout. Amounts are in satang.
type Quote struct {
	Subtotal       int64          `json:"subtotal"`
	DiscountAmount int64          `json:"discount_amount"`
	ShippingFee    int64          `json:"shipping_fee"`
	Total          int64          `json:"total"`
	Coupon         *AppliedCoupon `json:"coupon,omitempty"`
	CouponRevoked  bool           `json:"coupon_revoked,omitempty"`
	RevokeNotice   string         `json:"revoke_notice,omitempty"`
}

// Aggregator combines subtotal, coupon discount and shipping into a final
// payable amount. It owns coupon revalidation: callers invoke Recompute every
// time the subtotal or distance changes instead of caching derived values.
type Aggregator struct {
	registry *Registry
	shipping *ShippingCalculator
}

// NewAggregator creates a pricing aggregator
func NewAggregator(registry *Registry, shipping *ShippingCalculator) *Aggregator {
	return &Aggregator{registry: registry, shipping: shipping}
}

// Recompute derives discount, shipping and total for the given subtotal.
//
// The applied coupon is re-resolved against the new subtotal; if its minimum
// no longer holds it is revoked, the discount resets to zero and the returned
// quote carries a user-visible revocation notice. The discount is clamped to
// the subtotal and the total floors at zero, so the result is never negative.
func (a *Aggregator) Recompute(subtotal int64, applied *AppliedCoupon, distanceKm float64) Quote {
	quote := Quote{Subtotal: subtotal}

	if applied != nil {
		refreshed, err := a.registry.Resolve(applied.Code, subtotal)
		if err != nil {
			quote.CouponRevoked = true
			quote.RevokeNotice = revokeNotice(applied, err)
		} else {
			quote.Coupon = refreshed
			quote.DiscountAmount = refreshed.DiscountAmount
		}
	}

	quote.ShippingFee = a.shipping.Quote(distanceKm, quote.Coupon, subtotal)

	if quote.DiscountAmount > subtotal {
		quote.DiscountAmount = subtotal
	}

	total := subtotal - quote.DiscountAmount + quote.ShippingFee
	if total < 0 {
		total = 0
	}
	quote.Total = total

	return quote
}

func revokeNotice(applied *AppliedCoupon, err error) string {
	var minErr *MinimumNotMetError
	if errors.As(err, &minErr) {
		return fmt.Sprintf("subtotal below %s, promotion %s cancelled",
			FormatBaht(minErr.Minimum), applied.Code)
	}
	return fmt.Sprintf("promotion %s is no longer available and was cancelled", applied.Code)
}
