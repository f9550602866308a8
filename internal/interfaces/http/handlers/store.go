// internal/interfaces/http/handlers/store.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/store"
)

// StoreHandler handles store configuration endpoints
type StoreHandler struct {
	storeService *store.Service
	config       *config.Config
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(db *gorm.DB, cfg *config.Config) *StoreHandler {
	return &StoreHandler{
		storeService: store.NewService(db, cfg),
		config:       cfg,
	}
}

// GetStore handles GET /stores/:slug
func (h *StoreHandler) GetStore(c *gin.Context) {
	st, err := h.storeService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": st,
	})
}

// UpdateSettings handles PUT /dashboard/stores/:slug/settings
func (h *StoreHandler) UpdateSettings(c *gin.Context) {
	var req store.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	st, err := h.storeService.UpdateSettings(c.Param("slug"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Configurações atualizadas",
		"data":    st,
	})
}
