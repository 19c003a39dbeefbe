// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/baankanom/bakery-backend/internal/domain/cart"
	"github.com/baankanom/bakery-backend/internal/domain/checkout"
	"github.com/baankanom/bakery-backend/internal/infrastructure/storage"
	"github.com/baankanom/bakery-backend/internal/pkg/realtime"
)

// RealtimeTable is the table name order change events are published under
const RealtimeTable = "orders"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrSlipRequired      = errors.New("payment slip is required")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("order cannot move to that status")
)

// CheckoutIncompleteError reports which fields block submission
type CheckoutIncompleteError struct {
	Missing []string
}

func (e *CheckoutIncompleteError) Error() string {
	return fmt.Sprintf("checkout is incomplete: missing %v", e.Missing)
}

// SlipStore is the slice of object storage the order flow needs
type SlipStore interface {
	Put(ctx context.Context, bucket, path string, content io.Reader) (string, error)
	PublicURL(bucket, path string) string
	Delete(ctx context.Context, bucket, path string) error
}

// CartStore is the slice of the cart service the order flow needs. The
// cart contents come from the checkout summary's snapshot; only the clear
// runs here, inside the submission transaction.
type CartStore interface {
	ClearTx(ctx context.Context, tx *gorm.DB, userID uint) error
}

// CheckoutStore prices the checkout and tears its state down after
// submission
type CheckoutStore interface {
	Summary(ctx context.Context, userID uint) (*checkout.Summary, error)
	Clear(ctx context.Context, userID uint) error
}

// EventPublisher pushes advisory change notifications to live clients
type EventPublisher interface {
	Publish(ctx context.Context, table, eventType string, userID uint)
}

// ConfirmationMailer sends the post-submission confirmation email
type ConfirmationMailer interface {
	SendOrderConfirmation(to string, o *Order) error
}

// submissionWriter persists a submission atomically: order, items, the
// initial status history row, and the cart clear commit or fail together
type submissionWriter interface {
	create(ctx context.Context, o *Order, items []OrderItem, at time.Time, clearCart func(tx *gorm.DB) error) error
}

// Service handles order submission and fulfillment
type Service struct {
	db         *gorm.DB
	store      SlipStore
	slipBucket string
	carts      CartStore
	checkouts  CheckoutStore
	hub        EventPublisher
	mailer     ConfirmationMailer
	logger     *logrus.Logger
	writer     submissionWriter
}

// NewService creates a new order service. mailer may be nil when email
// is not configured.
func NewService(
	db *gorm.DB,
	store SlipStore,
	slipBucket string,
	carts CartStore,
	checkouts CheckoutStore,
	hub EventPublisher,
	mailer ConfirmationMailer,
	logger *logrus.Logger,
) *Service {
	return &Service{
		db:         db,
		store:      store,
		slipBucket: slipBucket,
		carts:      carts,
		checkouts:  checkouts,
		hub:        hub,
		mailer:     mailer,
		logger:     logger,
		writer:     &gormSubmissions{db: db},
	}
}

// Slip carries the uploaded payment slip
type Slip struct {
	Filename string
	Content  io.Reader
}

// Submit turns the shopper's cart and checkout state into a pending order.
// The order is priced and persisted from the summary's single cart
// snapshot. The slip is stored first; the order, its items, and the cart
// clear then run in one transaction. If the transaction fails the slip is
// removed so storage does not accumulate orphans.
func (s *Service) Submit(ctx context.Context, userID uint, userEmail string, slip *Slip) (*Order, error) {
	if slip == nil || slip.Content == nil {
		return nil, ErrSlipRequired
	}

	summary, err := s.checkouts.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !summary.Readiness.Ready {
		return nil, &CheckoutIncompleteError{Missing: summary.Readiness.Missing}
	}

	slipPath, err := s.store.Put(ctx, s.slipBucket, storage.ObjectName(slip.Filename), slip.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store payment slip: %w", err)
	}

	now := time.Now().UTC()
	o := &Order{
		UserID:         userID,
		RecipientName:  summary.State.RecipientName,
		Phone:          summary.State.Phone,
		Address:        summary.State.Address,
		Note:           summary.State.Note,
		DistanceKm:     summary.State.DistanceKm,
		Subtotal:       summary.Quote.Subtotal,
		DiscountAmount: summary.Quote.DiscountAmount,
		ShippingFee:    summary.Quote.ShippingFee,
		Total:          summary.Quote.Total,
		SlipURL:        s.store.PublicURL(s.slipBucket, slipPath),
		SlipPath:       slipPath,
		Status:         StatusPending,
	}
	if summary.Quote.Coupon != nil {
		o.CouponCode = summary.Quote.Coupon.Code
	}

	items := make([]OrderItem, 0, len(summary.Cart.Items))
	for _, line := range summary.Cart.Items {
		items = append(items, OrderItem{
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
			CustomOptions: line.CustomOptions,
		})
	}

	err = s.writer.create(ctx, o, items, now, func(tx *gorm.DB) error {
		return s.carts.ClearTx(ctx, tx, userID)
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, s.slipBucket, slipPath); delErr != nil {
			s.logger.WithError(delErr).WithField("slip_path", slipPath).
				Warn("Failed to remove payment slip after aborted order")
		}
		return nil, err
	}
	o.Items = items

	if err := s.checkouts.Clear(ctx, userID); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).
			Warn("Failed to clear checkout state after order submission")
	}

	s.hub.Publish(ctx, cart.RealtimeTable, realtime.EventDelete, userID)
	s.hub.Publish(ctx, RealtimeTable, realtime.EventInsert, userID)

	if s.mailer != nil && userEmail != "" {
		go func(o Order) {
			if err := s.mailer.SendOrderConfirmation(userEmail, &o); err != nil {
				s.logger.WithError(err).WithField("order_number", o.OrderNumber).
					Warn("Failed to send order confirmation email")
			}
		}(*o)
	}

	return o, nil
}

// gormSubmissions persists submissions through a gorm transaction
type gormSubmissions struct {
	db *gorm.DB
}

func (g *gormSubmissions) create(ctx context.Context, o *Order, items []OrderItem, at time.Time, clearCart func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sequence, err := nextSequence(tx, at)
		if err != nil {
			return err
		}
		o.OrderNumber = NumberFor(at, sequence)

		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = o.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		history := StatusHistory{OrderID: o.ID, ToStatus: StatusPending}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record order status: %w", err)
		}

		return clearCart(tx)
	})
}

// nextSequence counts today's orders under a day-scoped advisory lock, so
// two submissions committing together cannot read the same count and mint
// duplicate order numbers
func nextSequence(tx *gorm.DB, at time.Time) (int64, error) {
	day := at.Format("20060102")
	if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "orders:"+day).Error; err != nil {
		return 0, fmt.Errorf("failed to lock order sequence: %w", err)
	}

	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)

	var count int64
	if err := tx.Model(&Order{}).
		Where("created_at >= ?", dayStart).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to sequence order number: %w", err)
	}
	return count + 1, nil
}

// ListRequest pages through orders
type ListRequest struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// ListResponse is a page of orders, newest first
type ListResponse struct {
	Orders []Order `json:"orders"`
	Total  int64   `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// List returns the shopper's own orders, newest first
func (s *Service) List(ctx context.Context, userID uint, req *ListRequest) (*ListResponse, error) {
	return s.list(ctx, req, s.db.WithContext(ctx).Where("user_id = ?", userID))
}

// AdminList returns all orders, newest first, optionally filtered by status
func (s *Service) AdminList(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	return s.list(ctx, req, s.db.WithContext(ctx))
}

func (s *Service) list(ctx context.Context, req *ListRequest, query *gorm.DB) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Status != "" {
		if !ValidStatus(req.Status) {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Model(&Order{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	offset := (req.Page - 1) * req.Limit
	if err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(req.Limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &ListResponse{
		Orders: orders,
		Total:  total,
		Page:   req.Page,
		Limit:  req.Limit,
	}, nil
}

// Get returns one of the shopper's own orders with its items
func (s *Service) Get(ctx context.Context, userID, orderID uint) (*Order, error) {
	return s.get(ctx, s.db.WithContext(ctx).Where("user_id = ?", userID), orderID)
}

// GetAny returns any order by ID with its status history, for admin views
func (s *Service) GetAny(ctx context.Context, orderID uint) (*Order, error) {
	return s.get(ctx, s.db.WithContext(ctx).Preload("StatusHistory"), orderID)
}

func (s *Service) get(ctx context.Context, query *gorm.DB, orderID uint) (*Order, error) {
	var o Order
	if err := query.Preload("Items").First(&o, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// UpdateStatus moves an order along pending, paid, shipped, delivered,
// with cancellation allowed while the order is pending or paid
func (s *Service) UpdateStatus(ctx context.Context, orderID uint, status string) (*Order, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	o, err := s.GetAny(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	previous := o.Status
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(o).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		history := StatusHistory{OrderID: o.ID, FromStatus: previous, ToStatus: status}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.Status = status

	s.hub.Publish(ctx, RealtimeTable, realtime.EventUpdate, o.UserID)
	return o, nil
}
