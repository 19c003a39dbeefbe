// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/baankanom/bakery-backend/internal/domain/product"
	"github.com/baankanom/bakery-backend/internal/pkg/realtime"
)

// RealtimeTable is the table name cart change events are published under
const RealtimeTable = "cart_items"

var (
	ErrLineNotFound       = errors.New("cart item not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
)

// Service handles cart business logic
type Service struct {
	db       *gorm.DB
	products *product.Service
	hub      *realtime.Hub
}

// NewService creates a new cart service
func NewService(db *gorm.DB, products *product.Service, hub *realtime.Hub) *Service {
	return &Service{
		db:       db,
		products: products,
		hub:      hub,
	}
}

// AddRequest puts a product into the cart
type AddRequest struct {
	ProductID     uint    `json:"product_id" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required,min=1"`
	CustomOptions JSONMap `json:"custom_options"`
}

// Add puts a product into the shopper's cart. Adding a product that is
// already in the cart without custom options bumps its quantity; lines
// with custom options are always kept separate.
func (s *Service) Add(ctx context.Context, userID uint, req *AddRequest) (*CartLine, error) {
	if req.Quantity < MinQuantity {
		return nil, ErrInvalidQuantity
	}
	quantity := ClampQuantity(req.Quantity)

	// An empty options map stores as NULL so plain lines keep merging
	if len(req.CustomOptions) == 0 {
		req.CustomOptions = nil
	}

	p, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrProductUnavailable
	}

	var line CartLine
	if len(req.CustomOptions) == 0 {
		err = s.db.WithContext(ctx).
			Where("user_id = ? AND product_id = ? AND custom_options IS NULL", userID, req.ProductID).
			First(&line).Error
		if err == nil {
			line.Quantity = ClampQuantity(line.Quantity + quantity)
			line.ProductName = p.Name
			line.ImageURL = p.ImageURL
			line.UnitPrice = p.Price
			if err := s.db.WithContext(ctx).Save(&line).Error; err != nil {
				return nil, fmt.Errorf("failed to update cart item: %w", err)
			}
			s.hub.Publish(ctx, RealtimeTable, realtime.EventUpdate, userID)
			return &line, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up cart item: %w", err)
		}
	}

	line = CartLine{
		UserID:        userID,
		ProductID:     p.ID,
		ProductName:   p.Name,
		ImageURL:      p.ImageURL,
		UnitPrice:     p.Price,
		Quantity:      quantity,
		CustomOptions: req.CustomOptions,
	}
	if err := s.db.WithContext(ctx).Create(&line).Error; err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.hub.Publish(ctx, RealtimeTable, realtime.EventInsert, userID)
	return &line, nil
}

// CartResponse is the shopper's cart with its running subtotal
type CartResponse struct {
	Items    []CartLine `json:"items"`
	Subtotal int64      `json:"subtotal"`
	Count    int        `json:"count"`
}

// List returns the shopper's cart, oldest lines first
func (s *Service) List(ctx context.Context, userID uint) (*CartResponse, error) {
	var lines []CartLine
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	return &CartResponse{
		Items:    lines,
		Subtotal: Subtotal(lines),
		Count:    len(lines),
	}, nil
}

// Count returns the number of lines in the shopper's cart
func (s *Service) Count(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&CartLine{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count, nil
}

// UpdateQuantity changes a line's quantity. Zero or below removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, userID, lineID uint, quantity int) error {
	line, err := s.getLine(ctx, userID, lineID)
	if err != nil {
		return err
	}

	if quantity < MinQuantity {
		if err := s.db.WithContext(ctx).Delete(line).Error; err != nil {
			return fmt.Errorf("failed to remove cart item: %w", err)
		}
		s.hub.Publish(ctx, RealtimeTable, realtime.EventDelete, userID)
		return nil
	}

	line.Quantity = ClampQuantity(quantity)
	if err := s.db.WithContext(ctx).Save(line).Error; err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	s.hub.Publish(ctx, RealtimeTable, realtime.EventUpdate, userID)
	return nil
}

// Remove deletes a single line from the shopper's cart
func (s *Service) Remove(ctx context.Context, userID, lineID uint) error {
	line, err := s.getLine(ctx, userID, lineID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(line).Error; err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	s.hub.Publish(ctx, RealtimeTable, realtime.EventDelete, userID)
	return nil
}

// Clear empties the shopper's cart
func (s *Service) Clear(ctx context.Context, userID uint) error {
	if err := s.ClearTx(ctx, s.db, userID); err != nil {
		return err
	}
	s.hub.Publish(ctx, RealtimeTable, realtime.EventDelete, userID)
	return nil
}

// ClearTx empties the cart inside a caller-owned transaction. No realtime
// event is published; the caller publishes after the transaction commits.
func (s *Service) ClearTx(ctx context.Context, tx *gorm.DB, userID uint) error {
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&CartLine{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *Service) getLine(ctx context.Context, userID, lineID uint) (*CartLine, error) {
	var line CartLine
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	return &line, nil
}
