// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/cart"
	"github.com/your-org/delivery-backend/internal/domain/checkout"
	"github.com/your-org/delivery-backend/internal/domain/order"
	"github.com/your-org/delivery-backend/internal/domain/store"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	cartService     *cart.Service
	storeService    *store.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CheckoutHandler {
	cartSvc := cart.NewService(cart.NewRedisRepository(redisClient))
	orderSvc := order.NewService(db, cfg)
	storeSvc := store.NewService(db, cfg)

	return &CheckoutHandler{
		checkoutService: checkout.NewService(redisClient, cfg, cartSvc, orderSvc, storeSvc),
		cartService:     cartSvc,
		storeService:    storeSvc,
		config:          cfg,
	}
}

// SummaryRequest asks for the pricing breakdown of the current cart.
type SummaryRequest struct {
	Type order.OrderType `json:"type" binding:"required"`
}

// GetSummary handles POST /stores/:slug/checkout/summary
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	slug := c.Param("slug")
	st, err := h.storeService.GetBySlug(slug)
	if err != nil {
		respondError(c, err)
		return
	}

	cartState, err := h.cartService.GetCart(c.Request.Context(), cart.Scope(slug, c.GetHeader("X-Customer-ID")))
	if err != nil {
		respondError(c, err)
		return
	}

	summary := checkout.Summarize(cartState, st, req.Type, h.config.Delivery.DefaultFee)
	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}

// Submit handles POST /stores/:slug/checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req checkout.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	o, err := h.checkoutService.Submit(c.Request.Context(), c.Param("slug"), c.GetHeader("X-Customer-ID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pedido realizado com sucesso",
		"data":    o,
	})
}
