// internal/domain/pricing/coupon.go
package pricing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// CouponKind classifies what a coupon rule does
type CouponKind string

const (
	KindPercentOff   CouponKind = "percent_off"
	KindFixedOff     CouponKind = "fixed_off"
	KindFreeShipping CouponKind = "free_shipping"
)

// CouponRule is a static promotion rule. Amounts are in satang.
type CouponRule struct {
	Code            string     `json:"code"`
	Kind            CouponKind `json:"kind"`
	Rate            float64    `json:"rate,omitempty"`   // percent_off only, e.g. 0.10
	Amount          int64      `json:"amount,omitempty"` // fixed_off only
	MinimumSubtotal int64      `json:"minimum_subtotal"`
	Description     string     `json:"description"`
}

// AppliedCoupon is a coupon resolved against a concrete subtotal.
// ResolvedSubtotal records the subtotal the discount was computed at.
type AppliedCoupon struct {
	Code             string     `json:"code"`
	Kind             CouponKind `json:"kind"`
	DiscountAmount   int64      `json:"discount_amount"`
	MinimumSubtotal  int64      `json:"minimum_subtotal"`
	ResolvedSubtotal int64      `json:"resolved_subtotal"`
}

// ErrCouponNotFound is returned when a code matches no registry entry
var ErrCouponNotFound = errors.New("coupon code not found")

// MinimumNotMetError is returned when the subtotal is below a rule's threshold
type MinimumNotMetError struct {
	Code      string
	Minimum   int64
	Shortfall int64
}

func (e *MinimumNotMetError) Error() string {
	return fmt.Sprintf("coupon %s requires a minimum subtotal of %s (short by %s)",
		e.Code, FormatBaht(e.Minimum), FormatBaht(e.Shortfall))
}

// Registry is the fixed table of coupon codes
type Registry struct {
	rules map[string]CouponRule
}

// NewRegistry creates the registry with the shop's standing promotions
func NewRegistry() *Registry {
	rules := []CouponRule{
		{
			Code:        "HBD10",
			Kind:        KindPercentOff,
			Rate:        0.10,
			Description: "Birthday 10% off, no minimum",
		},
		{
			Code:            "WELCOME50",
			Kind:            KindFixedOff,
			Amount:          5000, // ฿50
			MinimumSubtotal: 30000,
			Description:     "฿50 off orders of ฿300 or more",
		},
		{
			Code:            "FREEDEL",
			Kind:            KindFreeShipping,
			MinimumSubtotal: 50000,
			Description:     "Free delivery on orders of ฿500 or more",
		},
	}

	byCode := make(map[string]CouponRule, len(rules))
	for _, r := range rules {
		byCode[r.Code] = r
	}
	return &Registry{rules: byCode}
}

// Rules returns all coupon rules for display on the promotions page
func (r *Registry) Rules() []CouponRule {
	out := make([]CouponRule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Resolve looks up a code and computes its discount against the given subtotal.
// Codes are matched case-insensitively with surrounding whitespace ignored.
// Resolve is a pure lookup; the caller owns the returned AppliedCoupon.
func (r *Registry) Resolve(code string, subtotal int64) (*AppliedCoupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	rule, ok := r.rules[normalized]
	if !ok {
		return nil, ErrCouponNotFound
	}

	if subtotal < rule.MinimumSubtotal {
		return nil, &MinimumNotMetError{
			Code:      rule.Code,
			Minimum:   rule.MinimumSubtotal,
			Shortfall: rule.MinimumSubtotal - subtotal,
		}
	}

	return &AppliedCoupon{
		Code:             rule.Code,
		Kind:             rule.Kind,
		DiscountAmount:   discountFor(rule, subtotal),
		MinimumSubtotal:  rule.MinimumSubtotal,
		ResolvedSubtotal: subtotal,
	}, nil
}

// discountFor computes the satang discount of a rule at a subtotal.
// The discount never exceeds the subtotal.
func discountFor(rule CouponRule, subtotal int64) int64 {
	var discount int64
	switch rule.Kind {
	case KindPercentOff:
		discount = int64(math.Round(float64(subtotal) * rule.Rate))
	case KindFixedOff:
		discount = rule.Amount
	case KindFreeShipping:
		discount = 0 // the benefit lands on the shipping fee, not the subtotal
	}

	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

// FormatBaht renders a satang amount as baht with two decimals
func FormatBaht(satang int64) string {
	return fmt.Sprintf("฿%.2f", float64(satang)/100)
}
