package pricing

import "testing"

func TestQuote_DistanceBased(t *testing.T) {
	calc := NewShippingCalculator(2000, 500)

	tests := []struct {
		name       string
		distanceKm float64
		want       int64
	}{
		{"ten km", 10, 2000 + 5000},
		{"one km", 1, 2500},
		{"fractional km rounds to nearest satang", 2.5, 2000 + 1250},
		{"zero distance means not yet entered", 0, 0},
		{"negative distance means not yet entered", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.Quote(tt.distanceKm, nil, 10000); got != tt.want {
				t.Errorf("Quote(%v) = %d, want %d", tt.distanceKm, got, tt.want)
			}
		})
	}
}

func TestQuote_FreeShippingCoupon(t *testing.T) {
	calc := NewShippingCalculator(2000, 500)
	freeDel := &AppliedCoupon{Code: "FREEDEL", Kind: KindFreeShipping, MinimumSubtotal: 50000}

	// ฿600 subtotal meets the ฿500 minimum: fee waived at any distance
	if got := calc.Quote(10, freeDel, 60000); got != 0 {
		t.Errorf("expected waived fee, got %d", got)
	}

	// Same distance without the coupon pays base + 10×perKm
	if got := calc.Quote(10, nil, 60000); got != 7000 {
		t.Errorf("expected fee 7000, got %d", got)
	}

	// Below the minimum the waiver does not apply
	if got := calc.Quote(10, freeDel, 40000); got != 7000 {
		t.Errorf("expected fee 7000 below minimum, got %d", got)
	}

	// A non-shipping coupon never touches the fee
	percent := &AppliedCoupon{Code: "HBD10", Kind: KindPercentOff}
	if got := calc.Quote(10, percent, 60000); got != 7000 {
		t.Errorf("expected fee 7000 with percent coupon, got %d", got)
	}
}
