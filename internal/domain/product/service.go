// internal/domain/product/service.go
package product

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

// ErrProductNotFound indicates the product does not exist or is inactive.
var ErrProductNotFound = fmt.Errorf("product not found")

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// IngredientInput describes one ingredient on create/update.
type IngredientInput struct {
	Name      string `json:"name" binding:"required"`
	Included  bool   `json:"included"`
	Removable bool   `json:"removable"`
}

// AddonInput describes one addon on create/update.
type AddonInput struct {
	Name        string        `json:"name" binding:"required"`
	Price       pricing.Price `json:"price"`
	MaxQuantity int           `json:"max_quantity"`
	IsActive    *bool         `json:"is_active"`
}

// CreateProductRequest represents a create product request
type CreateProductRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Price       pricing.Price     `json:"price"`
	ImageURL    string            `json:"image_url"`
	CategoryID  *string           `json:"category_id"`
	SortOrder   int               `json:"sort_order"`
	Ingredients []IngredientInput `json:"ingredients"`
	Addons      []AddonInput      `json:"addons"`
}

// UpdateProductRequest represents an update product request
type UpdateProductRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Price       *pricing.Price `json:"price"`
	ImageURL    *string        `json:"image_url"`
	CategoryID  *string        `json:"category_id"`
	IsActive    *bool          `json:"is_active"`
	SortOrder   *int           `json:"sort_order"`
}

// ListByStore returns the menu of a store. When activeOnly is set, inactive
// products and addons are filtered out for the storefront.
func (s *Service) ListByStore(storeSlug string, activeOnly bool) ([]Product, error) {
	query := s.db.Preload("Ingredients").Preload("Addons").
		Where("store_slug = ?", storeSlug).
		Order("sort_order ASC, name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var products []Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if activeOnly {
		for i := range products {
			active := products[i].Addons[:0]
			for _, a := range products[i].Addons {
				if a.IsActive {
					active = append(active, a)
				}
			}
			products[i].Addons = active
		}
	}

	return products, nil
}

// GetByID retrieves a single product with its ingredients and addons.
func (s *Service) GetByID(storeSlug, id string) (*Product, error) {
	var prod Product
	err := s.db.Preload("Ingredients").Preload("Addons").
		Where("id = ? AND store_slug = ?", id, storeSlug).First(&prod).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}

// Create inserts a new product with its ingredients and addons.
func (s *Service) Create(storeSlug string, req *CreateProductRequest) (*Product, error) {
	prod := Product{
		ID:          uuid.New().String(),
		StoreSlug:   storeSlug,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		IsActive:    true,
		SortOrder:   req.SortOrder,
	}

	for _, in := range req.Ingredients {
		prod.Ingredients = append(prod.Ingredients, Ingredient{
			ID:        uuid.New().String(),
			ProductID: prod.ID,
			Name:      in.Name,
			Included:  in.Included,
			Removable: in.Removable,
		})
	}
	for _, in := range req.Addons {
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		prod.Addons = append(prod.Addons, Addon{
			ID:          uuid.New().String(),
			ProductID:   prod.ID,
			Name:        in.Name,
			Price:       in.Price,
			MaxQuantity: in.MaxQuantity,
			IsActive:    active,
		})
	}

	if err := s.db.Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &prod, nil
}

// Update patches product fields. Ingredient/addon composition is replaced
// wholesale when provided through UpdateComposition.
func (s *Service) Update(storeSlug, id string, req *UpdateProductRequest) (*Product, error) {
	prod, err := s.GetByID(storeSlug, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(prod).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.GetByID(storeSlug, id)
}

// UpdateComposition replaces the ingredient and addon lists of a product.
func (s *Service) UpdateComposition(storeSlug, id string, ingredients []IngredientInput, addons []AddonInput) (*Product, error) {
	prod, err := s.GetByID(storeSlug, id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", prod.ID).Delete(&Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", prod.ID).Delete(&Addon{}).Error; err != nil {
			return err
		}

		for _, in := range ingredients {
			ing := Ingredient{
				ID:        uuid.New().String(),
				ProductID: prod.ID,
				Name:      in.Name,
				Included:  in.Included,
				Removable: in.Removable,
			}
			if err := tx.Create(&ing).Error; err != nil {
				return err
			}
		}
		for _, in := range addons {
			active := true
			if in.IsActive != nil {
				active = *in.IsActive
			}
			add := Addon{
				ID:          uuid.New().String(),
				ProductID:   prod.ID,
				Name:        in.Name,
				Price:       in.Price,
				MaxQuantity: in.MaxQuantity,
				IsActive:    active,
			}
			if err := tx.Create(&add).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product composition: %w", err)
	}

	return s.GetByID(storeSlug, id)
}

// Delete soft-deletes a product.
func (s *Service) Delete(storeSlug, id string) error {
	result := s.db.Where("id = ? AND store_slug = ?", id, storeSlug).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
