// internal/domain/store/service.go
package store

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

// ErrStoreNotFound indicates no store exists for the given slug.
var ErrStoreNotFound = fmt.Errorf("store not found")

// Service handles tenant configuration
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new store service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UpdateSettingsRequest represents a store settings update
type UpdateSettingsRequest struct {
	Name                  *string        `json:"name"`
	DeliveryFee           *pricing.Price `json:"delivery_fee"`
	FreeDeliveryThreshold *pricing.Price `json:"free_delivery_threshold"`
	MinimumOrder          *pricing.Price `json:"minimum_order"`
	EstimatedDeliveryTime *string        `json:"estimated_delivery_time"`
	AcceptingOrders       *bool          `json:"accepting_orders"`
}

// GetBySlug retrieves a store by its slug.
func (s *Service) GetBySlug(slug string) (*Store, error) {
	var st Store
	err := s.db.Where("slug = ?", slug).First(&st).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve store: %w", err)
	}
	return &st, nil
}

// Create registers a new tenant.
func (s *Service) Create(slug, name string) (*Store, error) {
	st := Store{
		ID:              uuid.New().String(),
		Slug:            slug,
		Name:            name,
		DeliveryFee:     pricing.Price(s.config.Delivery.DefaultFee),
		AcceptingOrders: true,
	}
	if err := s.db.Create(&st).Error; err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return &st, nil
}

// UpdateSettings patches the delivery business rules of a store.
func (s *Service) UpdateSettings(slug string, req *UpdateSettingsRequest) (*Store, error) {
	st, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.DeliveryFee != nil {
		updates["delivery_fee"] = *req.DeliveryFee
	}
	if req.FreeDeliveryThreshold != nil {
		updates["free_delivery_threshold"] = *req.FreeDeliveryThreshold
	}
	if req.MinimumOrder != nil {
		updates["minimum_order"] = *req.MinimumOrder
	}
	if req.EstimatedDeliveryTime != nil {
		updates["estimated_delivery_time"] = *req.EstimatedDeliveryTime
	}
	if req.AcceptingOrders != nil {
		updates["accepting_orders"] = *req.AcceptingOrders
	}

	if len(updates) > 0 {
		if err := s.db.Model(st).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update store settings: %w", err)
		}
	}

	return s.GetBySlug(slug)
}

// SetBrandingAsset records the URL of an uploaded branding asset. Kind must be
// one of logo, favicon or banner.
func (s *Service) SetBrandingAsset(slug, kind, url string) (*Store, error) {
	st, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	var column string
	switch kind {
	case "logo":
		column = "logo_url"
	case "favicon":
		column = "favicon_url"
	case "banner":
		column = "banner_url"
	default:
		return nil, fmt.Errorf("unknown branding asset kind: %s", kind)
	}

	if err := s.db.Model(st).Update(column, url).Error; err != nil {
		return nil, fmt.Errorf("failed to update branding asset: %w", err)
	}
	return s.GetBySlug(slug)
}
