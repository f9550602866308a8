// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

// Product represents one menu item of a store. Prices arrive from upstream
// catalog payloads in mixed representations, so the money fields use
// pricing.Price as the normalization boundary.
type Product struct {
	ID          string         `gorm:"primaryKey;size:64" json:"id"`
	StoreSlug   string         `gorm:"not null;index;size:100" json:"store_slug"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       pricing.Price  `gorm:"not null" json:"price"`
	ImageURL    string         `gorm:"size:500" json:"image_url"`
	CategoryID  *string        `gorm:"size:64;index" json:"category_id,omitempty"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Ingredients []Ingredient `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"ingredients,omitempty"`
	Addons      []Addon      `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addons,omitempty"`
}

// Ingredient is a component of a product. Included ingredients ship by
// default; removable ones may be excluded by the customer. Ingredients that
// are not included by default can be explicitly selected.
type Ingredient struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	ProductID string    `gorm:"not null;index;size:64" json:"product_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Included  bool      `gorm:"default:true" json:"included"`
	Removable bool      `gorm:"default:true" json:"removable"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Addon is an optional paid extra. MaxQuantity of zero means unbounded.
type Addon struct {
	ID          string        `gorm:"primaryKey;size:64" json:"id"`
	ProductID   string        `gorm:"not null;index;size:64" json:"product_id"`
	Name        string        `gorm:"not null;size:255" json:"name"`
	Price       pricing.Price `gorm:"not null" json:"price"`
	MaxQuantity int           `gorm:"default:0" json:"max_quantity,omitempty"`
	IsActive    bool          `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Category groups menu items on the storefront.
type Category struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	StoreSlug string         `gorm:"not null;index;size:100" json:"store_slug"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string    { return "products" }
func (Ingredient) TableName() string { return "ingredients" }
func (Addon) TableName() string      { return "addons" }
func (Category) TableName() string   { return "categories" }

// FindAddon resolves an addon by id. Returns nil when the id does not belong
// to this product.
func (p *Product) FindAddon(id string) *Addon {
	for i := range p.Addons {
		if p.Addons[i].ID == id {
			return &p.Addons[i]
		}
	}
	return nil
}

// FindIngredient resolves an ingredient by id.
func (p *Product) FindIngredient(id string) *Ingredient {
	for i := range p.Ingredients {
		if p.Ingredients[i].ID == id {
			return &p.Ingredients[i]
		}
	}
	return nil
}
