// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product categories shown in the storefront menu filter
const (
	CategoryCake    = "cake"
	CategoryCookie  = "cookie"
	CategoryTart    = "tart"
	CategoryCupcake = "cupcake"
	CategoryMacaron = "macaron"
	CategoryOther   = "other"
)

// Product represents an item sold by the bakery. Price is stored in satang.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null;size:255"`
	Description string         `json:"description" gorm:"type:text"`
	Price       int64          `json:"price" gorm:"not null"`
	Category    string         `json:"category" gorm:"not null;size:50;index"`
	ImageURL    string         `json:"image_url" gorm:"size:500"`
	ImagePath   string         `json:"-" gorm:"size:500"`
	IsCustom    bool           `json:"is_custom" gorm:"default:false"`
	IsActive    bool           `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for Product model
func (Product) TableName() string {
	return "products"
}

// ValidCategory reports whether a category value is one the menu understands
func ValidCategory(category string) bool {
	switch category {
	case CategoryCake, CategoryCookie, CategoryTart, CategoryCupcake, CategoryMacaron, CategoryOther:
		return true
	}
	return false
}
