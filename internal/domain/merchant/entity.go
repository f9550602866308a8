// internal/domain/merchant/entity.go
package merchant

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Merchant is a dashboard account tied to a single store tenant.
type Merchant struct {
	ID          string         `gorm:"primaryKey;size:64" json:"id"`
	StoreSlug   string         `gorm:"not null;index;size:100" json:"store_slug"`
	Email       string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string         `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	Name        string         `gorm:"size:100" json:"name"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Merchant) TableName() string {
	return "merchants"
}

// BeforeCreate normalizes the login email before persisting.
func (m *Merchant) BeforeCreate(tx *gorm.DB) error {
	m.Email = strings.ToLower(m.Email)
	return nil
}
