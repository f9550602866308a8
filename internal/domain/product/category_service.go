// internal/domain/product/category_service.go
package product

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrCategoryNotFound indicates the category does not exist for this store.
var ErrCategoryNotFound = fmt.Errorf("category not found")

// CategoryRequest represents a category create/update payload
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

// ListCategories returns the menu sections of a store in display order.
func (s *Service) ListCategories(storeSlug string, activeOnly bool) ([]Category, error) {
	query := s.db.Where("store_slug = ?", storeSlug).
		Order("sort_order ASC, name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var categories []Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory adds a menu section.
func (s *Service) CreateCategory(storeSlug string, req *CategoryRequest) (*Category, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	cat := Category{
		ID:        uuid.New().String(),
		StoreSlug: storeSlug,
		Name:      req.Name,
		SortOrder: req.SortOrder,
		IsActive:  active,
	}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &cat, nil
}

// UpdateCategory patches a menu section.
func (s *Service) UpdateCategory(storeSlug, id string, req *CategoryRequest) (*Category, error) {
	var cat Category
	err := s.db.Where("id = ? AND store_slug = ?", id, storeSlug).First(&cat).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve category: %w", err)
	}

	updates := map[string]any{
		"name":       req.Name,
		"sort_order": req.SortOrder,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := s.db.Model(&cat).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &cat, nil
}

// DeleteCategory soft-deletes a menu section. Products keep their category id
// and simply render uncategorized on the storefront.
func (s *Service) DeleteCategory(storeSlug, id string) error {
	result := s.db.Where("id = ? AND store_slug = ?", id, storeSlug).Delete(&Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
