// internal/domain/cart/entity.go
package cart

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Quantity bounds for a single cart line
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// JSONMap stores free-form custom order options (flavor, frosting, note)
// as a jsonb column
type JSONMap map[string]any

// Value implements driver.Valuer for database storage
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for database retrieval
func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", value)
	}

	return json.Unmarshal(data, m)
}

// CartLine is one product entry in a shopper's cart. The product name and
// unit price are denormalized at add time so the cart renders without joins.
type CartLine struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;index"`
	ProductID     uint      `json:"product_id" gorm:"not null"`
	ProductName   string    `json:"product_name" gorm:"not null;size:255"`
	ImageURL      string    `json:"image_url" gorm:"size:500"`
	UnitPrice     int64     `json:"unit_price" gorm:"not null"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	CustomOptions JSONMap   `json:"custom_options,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the table name for CartLine model
func (CartLine) TableName() string {
	return "cart_items"
}

// LineTotal returns unit price times quantity in satang
func (l *CartLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// ClampQuantity pins a requested quantity into the allowed range.
// Zero and below mean removal and are returned unchanged.
func ClampQuantity(quantity int) int {
	if quantity > MaxQuantity {
		return MaxQuantity
	}
	return quantity
}

// Subtotal sums line totals in satang
func Subtotal(lines []CartLine) int64 {
	var total int64
	for i := range lines {
		total += lines[i].LineTotal()
	}
	return total
}
