package pricing

import (
	"strings"
	"testing"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(NewRegistry(), NewShippingCalculator(2000, 500))
}

func TestRecompute_NoCoupon(t *testing.T) {
	agg := newTestAggregator()

	quote := agg.Recompute(20000, nil, 4)
	if quote.DiscountAmount != 0 {
		t.Errorf("expected no discount, got %d", quote.DiscountAmount)
	}
	if quote.ShippingFee != 4000 {
		t.Errorf("expected shipping 4000, got %d", quote.ShippingFee)
	}
	if quote.Total != 24000 {
		t.Errorf("expected total 24000, got %d", quote.Total)
	}
}

func TestRecompute_PercentCouponFollowsSubtotal(t *testing.T) {
	agg := newTestAggregator()

	applied, err := NewRegistry().Resolve("HBD10", 20000)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// ฿200 subtotal: ฿20 off, total ฿180 plus shipping
	quote := agg.Recompute(20000, applied, 10)
	if quote.DiscountAmount != 2000 {
		t.Errorf("expected discount 2000, got %d", quote.DiscountAmount)
	}
	if quote.Total != 20000-2000+7000 {
		t.Errorf("expected total 25000, got %d", quote.Total)
	}

	// The discount is re-derived from the new subtotal, not the stale snapshot
	quote = agg.Recompute(40000, applied, 10)
	if quote.DiscountAmount != 4000 {
		t.Errorf("expected discount 4000 after subtotal change, got %d", quote.DiscountAmount)
	}
}

func TestRecompute_RevokesCouponBelowMinimum(t *testing.T) {
	agg := newTestAggregator()
	registry := NewRegistry()

	applied, err := registry.Resolve("WELCOME50", 35000)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// Quantity edited down; subtotal drops under the ฿300 minimum
	quote := agg.Recompute(20000, applied, 2)
	if !quote.CouponRevoked {
		t.Fatal("expected coupon to be revoked")
	}
	if quote.Coupon != nil {
		t.Error("expected no surviving coupon on the quote")
	}
	if quote.DiscountAmount != 0 {
		t.Errorf("expected discount reset to 0, got %d", quote.DiscountAmount)
	}
	if !strings.Contains(quote.RevokeNotice, "subtotal below") ||
		!strings.Contains(quote.RevokeNotice, "WELCOME50") {
		t.Errorf("unexpected revoke notice: %q", quote.RevokeNotice)
	}
}

func TestRecompute_FreeShippingRevocationRestoresFee(t *testing.T) {
	agg := newTestAggregator()
	registry := NewRegistry()

	applied, err := registry.Resolve("FREEDEL", 60000)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	quote := agg.Recompute(60000, applied, 10)
	if quote.ShippingFee != 0 {
		t.Errorf("expected waived shipping, got %d", quote.ShippingFee)
	}

	quote = agg.Recompute(40000, applied, 10)
	if !quote.CouponRevoked {
		t.Fatal("expected revocation below the minimum")
	}
	if quote.ShippingFee != 7000 {
		t.Errorf("expected shipping restored to 7000, got %d", quote.ShippingFee)
	}
}

func TestRecompute_TotalNeverNegative(t *testing.T) {
	agg := newTestAggregator()

	tests := []struct {
		name     string
		subtotal int64
		coupon   *AppliedCoupon
	}{
		{"zero subtotal", 0, nil},
		{"discount equal to subtotal", 1000, &AppliedCoupon{Code: "HBD10", Kind: KindPercentOff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := agg.Recompute(tt.subtotal, tt.coupon, 0)
			if quote.Total < 0 {
				t.Errorf("total went negative: %d", quote.Total)
			}
			if quote.DiscountAmount > quote.Subtotal {
				t.Errorf("discount %d exceeds subtotal %d", quote.DiscountAmount, quote.Subtotal)
			}
		})
	}
}
