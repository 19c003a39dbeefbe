// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"github.com/baankanom/bakery-backend/internal/domain/cart"
)

// Order statuses
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Order is a submitted purchase. All amounts are satang snapshots taken at
// submission time; later price or promotion changes never touch them.
type Order struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	OrderNumber    string      `json:"order_number" gorm:"uniqueIndex;not null;size:32"`
	UserID         uint        `json:"user_id" gorm:"not null;index"`
	RecipientName  string      `json:"recipient_name" gorm:"not null;size:255"`
	Phone          string      `json:"phone" gorm:"not null;size:32"`
	Address        string      `json:"address" gorm:"not null;type:text"`
	Note           string      `json:"note,omitempty" gorm:"type:text"`
	DistanceKm     float64     `json:"distance_km" gorm:"not null"`
	Subtotal       int64       `json:"subtotal" gorm:"not null"`
	DiscountAmount int64       `json:"discount_amount" gorm:"not null;default:0"`
	ShippingFee    int64       `json:"shipping_fee" gorm:"not null;default:0"`
	Total          int64       `json:"total" gorm:"not null"`
	CouponCode     string      `json:"coupon_code,omitempty" gorm:"size:32"`
	SlipURL        string      `json:"slip_url" gorm:"size:500"`
	SlipPath       string      `json:"-" gorm:"size:500"`
	Status         string      `json:"status" gorm:"not null;default:'pending';index"`
	Items          []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`

	StatusHistory []StatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName returns the table name for Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one purchased line, copied from the cart at submission
type OrderItem struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	OrderID       uint         `json:"order_id" gorm:"not null;index"`
	ProductID     uint         `json:"product_id" gorm:"not null"`
	ProductName   string       `json:"product_name" gorm:"not null;size:255"`
	UnitPrice     int64        `json:"unit_price" gorm:"not null"`
	Quantity      int          `json:"quantity" gorm:"not null"`
	CustomOptions cart.JSONMap `json:"custom_options,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time    `json:"created_at"`
}

// TableName returns the table name for OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal returns unit price times quantity in satang
func (i OrderItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// StatusHistory records one status change on an order
type StatusHistory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"not null;index"`
	FromStatus string    `json:"from_status" gorm:"size:16"`
	ToStatus   string    `json:"to_status" gorm:"not null;size:16"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the table name for StatusHistory model
func (StatusHistory) TableName() string {
	return "order_status_history"
}

var statusTransitions = map[string][]string{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ValidStatus reports whether a status value is known
func ValidStatus(status string) bool {
	_, ok := statusTransitions[status]
	return ok
}

// CanTransitionTo reports whether the order may move to the given status
func (o *Order) CanTransitionTo(status string) bool {
	for _, next := range statusTransitions[o.Status] {
		if next == status {
			return true
		}
	}
	return false
}

// NumberFor builds an order number like BKO-20260829-00042 from the
// submission date and that day's running sequence
func NumberFor(at time.Time, sequence int64) string {
	return fmt.Sprintf("BKO-%s-%05d", at.Format("20060102"), sequence)
}
