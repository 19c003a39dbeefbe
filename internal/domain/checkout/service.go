// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baankanom/bakery-backend/internal/domain/cart"
	"github.com/baankanom/bakery-backend/internal/domain/pricing"
)

const stateTTL = 24 * time.Hour

var ErrNegativeDistance = errors.New("distance cannot be negative")

// Service keeps per-shopper checkout state in Redis and prices it
// through the registry and aggregator on every read
type Service struct {
	redis      *redis.Client
	registry   *pricing.Registry
	aggregator *pricing.Aggregator
	carts      *cart.Service
}

// NewService creates a new checkout service
func NewService(redisClient *redis.Client, registry *pricing.Registry, aggregator *pricing.Aggregator, carts *cart.Service) *Service {
	return &Service{
		redis:      redisClient,
		registry:   registry,
		aggregator: aggregator,
		carts:      carts,
	}
}

// Summary is the checkout page payload: the saved form state, the current
// price breakdown, and whether the order can be submitted. Cart is the
// snapshot the quote was priced from, so a caller persisting the summary
// never re-reads the cart and races a concurrent mutation.
type Summary struct {
	State     State              `json:"state"`
	Quote     pricing.Quote      `json:"quote"`
	Readiness Readiness          `json:"readiness"`
	Cart      *cart.CartResponse `json:"-"`
}

// Summary reprices the shopper's checkout against the live cart. A coupon
// whose minimum is no longer met is dropped from the stored state and the
// quote carries the revocation notice exactly once.
func (s *Service) Summary(ctx context.Context, userID uint) (*Summary, error) {
	state, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cartResp, err := s.carts.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	quote := s.aggregator.Recompute(cartResp.Subtotal, state.Coupon, state.DistanceKm)
	if quote.CouponRevoked {
		state.Coupon = nil
		if err := s.save(ctx, userID, state); err != nil {
			return nil, err
		}
	}

	return &Summary{
		State:     *state,
		Quote:     quote,
		Readiness: state.Readiness(len(cartResp.Items) == 0),
		Cart:      cartResp,
	}, nil
}

// RecipientRequest sets the delivery contact fields
type RecipientRequest struct {
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Note          string `json:"note"`
}

// SetRecipient saves the delivery contact fields
func (s *Service) SetRecipient(ctx context.Context, userID uint, req *RecipientRequest) (*Summary, error) {
	state, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	state.RecipientName = req.RecipientName
	state.Phone = req.Phone
	state.Address = req.Address
	state.Note = req.Note

	if err := s.save(ctx, userID, state); err != nil {
		return nil, err
	}
	return s.Summary(ctx, userID)
}

// SetDistance saves the delivery distance in kilometers. Zero clears the
// field back to its not-yet-entered state.
func (s *Service) SetDistance(ctx context.Context, userID uint, distanceKm float64) (*Summary, error) {
	if distanceKm < 0 {
		return nil, ErrNegativeDistance
	}

	state, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	state.DistanceKm = distanceKm
	if err := s.save(ctx, userID, state); err != nil {
		return nil, err
	}
	return s.Summary(ctx, userID)
}

// ApplyCoupon resolves a promotion code against the current cart subtotal
// and stores it in the checkout state
func (s *Service) ApplyCoupon(ctx context.Context, userID uint, code string) (*Summary, error) {
	state, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cartResp, err := s.carts.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	applied, err := s.registry.Resolve(code, cartResp.Subtotal)
	if err != nil {
		return nil, err
	}

	state.Coupon = applied
	if err := s.save(ctx, userID, state); err != nil {
		return nil, err
	}
	return s.Summary(ctx, userID)
}

// RemoveCoupon drops the applied promotion from the checkout state
func (s *Service) RemoveCoupon(ctx context.Context, userID uint) (*Summary, error) {
	state, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	state.Coupon = nil
	if err := s.save(ctx, userID, state); err != nil {
		return nil, err
	}
	return s.Summary(ctx, userID)
}

// Get loads the shopper's saved checkout state, empty if none exists
func (s *Service) Get(ctx context.Context, userID uint) (*State, error) {
	data, err := s.redis.Get(ctx, stateKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("failed to load checkout state: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to decode checkout state: %w", err)
	}
	return &state, nil
}

// Clear removes the shopper's checkout state, typically after an order
// has been submitted
func (s *Service) Clear(ctx context.Context, userID uint) error {
	if err := s.redis.Del(ctx, stateKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear checkout state: %w", err)
	}
	return nil
}

func (s *Service) save(ctx context.Context, userID uint, state *State) error {
	state.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode checkout state: %w", err)
	}
	if err := s.redis.Set(ctx, stateKey(userID), data, stateTTL).Err(); err != nil {
		return fmt.Errorf("failed to save checkout state: %w", err)
	}
	return nil
}

func stateKey(userID uint) string {
	return fmt.Sprintf("checkout:%d", userID)
}
