// internal/domain/checkout/state.go
package checkout

import (
	"strings"
	"time"

	"github.com/baankanom/bakery-backend/internal/domain/pricing"
)

// State is everything a shopper has filled in on the checkout page.
// It survives navigation and API restarts until the order is submitted.
type State struct {
	RecipientName string                 `json:"recipient_name"`
	Phone         string                 `json:"phone"`
	Address       string                 `json:"address"`
	Note          string                 `json:"note,omitempty"`
	DistanceKm    float64                `json:"distance_km"`
	Coupon        *pricing.AppliedCoupon `json:"coupon,omitempty"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// Readiness reports whether the checkout form can be submitted and,
// if not, which fields are still missing
type Readiness struct {
	Ready   bool     `json:"ready"`
	Missing []string `json:"missing,omitempty"`
}

// Readiness evaluates the submit gate. Delivery distance must be entered
// and positive; a zero distance means the shopper has not filled it in yet.
func (s *State) Readiness(cartEmpty bool) Readiness {
	var missing []string
	if cartEmpty {
		missing = append(missing, "cart")
	}
	if strings.TrimSpace(s.RecipientName) == "" {
		missing = append(missing, "recipient_name")
	}
	if strings.TrimSpace(s.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(s.Address) == "" {
		missing = append(missing, "address")
	}
	if s.DistanceKm <= 0 {
		missing = append(missing, "distance_km")
	}
	return Readiness{
		Ready:   len(missing) == 0,
		Missing: missing,
	}
}
