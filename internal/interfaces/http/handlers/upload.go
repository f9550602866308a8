// internal/interfaces/http/handlers/upload.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/store"
	"github.com/your-org/delivery-backend/internal/domain/upload"
)

// UploadHandler handles store asset uploads
type UploadHandler struct {
	uploadService *upload.Service
	storeService  *store.Service
	config        *config.Config
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(db *gorm.DB, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		uploadService: upload.NewService(db, cfg),
		storeService:  store.NewService(db, cfg),
		config:        cfg,
	}
}

// UploadAsset handles POST /dashboard/stores/:slug/assets. The multipart form
// carries the file under "file" and the asset kind under "kind". Branding
// kinds (logo, favicon, banner) also update the store record.
func (h *UploadHandler) UploadAsset(c *gin.Context) {
	slug := c.Param("slug")
	kind := upload.AssetKind(c.PostForm("kind"))

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Nenhum arquivo enviado.",
		})
		return
	}

	asset, err := h.uploadService.SaveAsset(slug, kind, header)
	if err != nil {
		respondError(c, err)
		return
	}

	switch kind {
	case upload.AssetKindLogo, upload.AssetKindFavicon, upload.AssetKindBanner:
		if _, err := h.storeService.SetBrandingAsset(slug, string(kind), asset.URL); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Arquivo enviado com sucesso",
		"data":    asset,
	})
}

// ListAssets handles GET /dashboard/stores/:slug/assets
func (h *UploadHandler) ListAssets(c *gin.Context) {
	assets, err := h.uploadService.ListByStore(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": assets,
	})
}

// DeleteAsset handles DELETE /dashboard/stores/:slug/assets/:id
func (h *UploadHandler) DeleteAsset(c *gin.Context) {
	if err := h.uploadService.Delete(c.Param("slug"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Arquivo removido",
	})
}
