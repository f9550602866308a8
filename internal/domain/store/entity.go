// internal/domain/store/entity.go
package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

// Store is one tenant of the platform, identified by its slug.
type Store struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Slug        string `gorm:"uniqueIndex;not null;size:100" json:"slug"`
	Name        string `gorm:"not null;size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Phone       string `gorm:"size:20" json:"phone"`

	// Delivery business rules. Zero thresholds mean the rule is unconfigured.
	DeliveryFee           pricing.Price `gorm:"default:0" json:"delivery_fee"`
	FreeDeliveryThreshold pricing.Price `gorm:"default:0" json:"free_delivery_threshold"`
	MinimumOrder          pricing.Price `gorm:"default:0" json:"minimum_order"`
	EstimatedDeliveryTime string        `gorm:"size:50" json:"estimated_delivery_time"`
	AcceptingOrders       bool          `gorm:"default:true" json:"accepting_orders"`

	// Branding assets
	LogoURL    string `gorm:"size:500" json:"logo_url"`
	FaviconURL string `gorm:"size:500" json:"favicon_url"`
	BannerURL  string `gorm:"size:500" json:"banner_url"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Store) TableName() string { return "stores" }

// HasFreeDeliveryThreshold reports whether free delivery is configured.
func (s *Store) HasFreeDeliveryThreshold() bool {
	return s.FreeDeliveryThreshold > 0
}

// HasMinimumOrder reports whether a minimum order value is configured.
func (s *Store) HasMinimumOrder() bool {
	return s.MinimumOrder > 0
}
