package pricing

import (
	"errors"
	"testing"
)

func TestResolve_PercentOff(t *testing.T) {
	registry := NewRegistry()

	// ฿200 subtotal with the 10% code yields a ฿20 discount
	applied, err := registry.Resolve("HBD10", 20000)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if applied.DiscountAmount != 2000 {
		t.Errorf("expected discount 2000, got %d", applied.DiscountAmount)
	}
	if applied.ResolvedSubtotal != 20000 {
		t.Errorf("expected resolved subtotal 20000, got %d", applied.ResolvedSubtotal)
	}
}

func TestResolve_NormalizesCode(t *testing.T) {
	registry := NewRegistry()

	for _, code := range []string{"hbd10", "  HBD10  ", "Hbd10"} {
		applied, err := registry.Resolve(code, 10000)
		if err != nil {
			t.Fatalf("code %q: expected no error, got %v", code, err)
		}
		if applied.Code != "HBD10" {
			t.Errorf("code %q: expected canonical code HBD10, got %s", code, applied.Code)
		}
	}
}

func TestResolve_NotFound(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Resolve("NOPE", 100000)
	if !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}

func TestResolve_MinimumNotMet(t *testing.T) {
	registry := NewRegistry()

	// WELCOME50 requires ฿300; at ฿250 the shortfall is ฿50
	_, err := registry.Resolve("WELCOME50", 25000)

	var minErr *MinimumNotMetError
	if !errors.As(err, &minErr) {
		t.Fatalf("expected MinimumNotMetError, got %v", err)
	}
	if minErr.Shortfall != 5000 {
		t.Errorf("expected shortfall 5000, got %d", minErr.Shortfall)
	}
	if minErr.Minimum != 30000 {
		t.Errorf("expected minimum 30000, got %d", minErr.Minimum)
	}
}

func TestResolve_FixedOffAtMinimum(t *testing.T) {
	registry := NewRegistry()

	applied, err := registry.Resolve("WELCOME50", 30000)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if applied.DiscountAmount != 5000 {
		t.Errorf("expected discount 5000, got %d", applied.DiscountAmount)
	}
}

func TestResolve_FreeShippingCarriesNoSubtotalDiscount(t *testing.T) {
	registry := NewRegistry()

	applied, err := registry.Resolve("FREEDEL", 60000)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if applied.Kind != KindFreeShipping {
		t.Errorf("expected free shipping kind, got %s", applied.Kind)
	}
	if applied.DiscountAmount != 0 {
		t.Errorf("expected zero subtotal discount, got %d", applied.DiscountAmount)
	}
}

func TestDiscountNeverExceedsSubtotal(t *testing.T) {
	rule := CouponRule{Code: "BIG", Kind: KindFixedOff, Amount: 99999}

	if got := discountFor(rule, 1000); got != 1000 {
		t.Errorf("expected discount clamped to 1000, got %d", got)
	}
}
