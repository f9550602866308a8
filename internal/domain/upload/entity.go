// internal/domain/upload/entity.go
package upload

import (
	"time"
)

// AssetKind identifies what an uploaded file is used for.
type AssetKind string

const (
	AssetKindLogo    AssetKind = "logo"
	AssetKindFavicon AssetKind = "favicon"
	AssetKindBanner  AssetKind = "banner"
	AssetKindProduct AssetKind = "product"
)

// Valid reports whether the kind is one of the known asset kinds.
func (k AssetKind) Valid() bool {
	switch k {
	case AssetKindLogo, AssetKindFavicon, AssetKindBanner, AssetKindProduct:
		return true
	}
	return false
}

// Asset records one uploaded file scoped to a store tenant.
type Asset struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	StoreSlug   string    `gorm:"not null;index;size:100" json:"store_slug"`
	Kind        AssetKind `gorm:"not null;size:20" json:"kind"`
	Filename    string    `gorm:"not null;size:255" json:"filename"`
	Path        string    `gorm:"not null;size:500" json:"-"`
	URL         string    `gorm:"not null;size:500" json:"url"`
	Size        int64     `gorm:"not null" json:"size"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Asset) TableName() string { return "assets" }
