// internal/domain/upload/service.go
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/config"
)

// Sentinel errors for uploads.
var (
	ErrFileTooLarge    = fmt.Errorf("o arquivo excede o tamanho máximo permitido")
	ErrInvalidFileType = fmt.Errorf("tipo de arquivo não permitido")
	ErrInvalidKind     = fmt.Errorf("tipo de asset desconhecido")
)

// contentTypes maps accepted extensions to the MIME type served back.
var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".ico":  "image/x-icon",
	".svg":  "image/svg+xml",
}

// Service handles file upload business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new upload service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// SaveAsset validates and stores an uploaded file under the tenant's
// directory and records it. The constraints (max size, accepted types) are
// client-facing guard rails, mirrored here because the files land on disk.
func (s *Service) SaveAsset(storeSlug string, kind AssetKind, header *multipart.FileHeader) (*Asset, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if header.Size > s.config.Upload.MaxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := contentTypes[ext]
	if !ok || !s.extensionAllowed(ext) {
		return nil, ErrInvalidFileType
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.config.Upload.LocalPath, storeSlug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	id := uuid.New().String()
	filename := fmt.Sprintf("%s-%s%s", kind, id, ext)
	path := filepath.Join(dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	asset := Asset{
		ID:          id,
		StoreSlug:   storeSlug,
		Kind:        kind,
		Filename:    header.Filename,
		Path:        path,
		URL:         fmt.Sprintf("/uploads/%s/%s", storeSlug, filename),
		Size:        size,
		ContentType: contentType,
	}
	if err := s.db.Create(&asset).Error; err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to record asset: %w", err)
	}

	return &asset, nil
}

// ListByStore lists the uploaded assets of a tenant.
func (s *Service) ListByStore(storeSlug string) ([]Asset, error) {
	var assets []Asset
	err := s.db.Where("store_slug = ?", storeSlug).
		Order("created_at DESC").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

// Delete removes an asset record and its file.
func (s *Service) Delete(storeSlug, id string) error {
	var asset Asset
	err := s.db.Where("id = ? AND store_slug = ?", id, storeSlug).First(&asset).Error
	if err == gorm.ErrRecordNotFound {
		return fmt.Errorf("asset not found")
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve asset: %w", err)
	}

	if err := s.db.Delete(&asset).Error; err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	os.Remove(asset.Path)
	return nil
}

func (s *Service) extensionAllowed(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}
