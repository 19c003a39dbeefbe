package order

import (
	"testing"
	"time"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPaid, StatusShipped, true},
		{StatusPaid, StatusCancelled, true},
		{StatusPaid, StatusDelivered, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusDelivered, StatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			o := Order{Status: tt.from}
			if got := o.CanTransitionTo(tt.to); got != tt.allowed {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled} {
		if !ValidStatus(status) {
			t.Errorf("expected %q to be valid", status)
		}
	}
	if ValidStatus("refunded") {
		t.Error("unknown status accepted")
	}
}

func TestNumberFor(t *testing.T) {
	at := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)

	if got := NumberFor(at, 42); got != "BKO-20260829-00042" {
		t.Errorf("NumberFor = %q, want BKO-20260829-00042", got)
	}
	if got := NumberFor(at, 1); got != "BKO-20260829-00001" {
		t.Errorf("NumberFor = %q, want BKO-20260829-00001", got)
	}
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{UnitPrice: 12000, Quantity: 3}
	if got := item.LineTotal(); got != 36000 {
		t.Errorf("LineTotal = %d, want 36000", got)
	}
}
