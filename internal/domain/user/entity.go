// internal/domain/user/entity.go
package user

import (
	"time"

	"gorm.io/gorm"
)

// User represents a storefront account
type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Email       string         `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password    string         `json:"-" gorm:"not null;size:255"`
	DisplayName string         `json:"display_name" gorm:"size:255"`
	AvatarURL   string         `json:"avatar_url" gorm:"size:500"`
	AvatarPath  string         `json:"-" gorm:"size:500"`
	IsAdmin     bool           `json:"is_admin" gorm:"default:false"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for User model
func (User) TableName() string {
	return "users"
}
