// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/cart"
	"github.com/your-org/delivery-backend/internal/domain/product"
)

// CartHandler handles storefront cart endpoints
type CartHandler struct {
	cartService    *cart.Service
	productService *product.Service
	config         *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService:    cart.NewService(cart.NewRedisRepository(redisClient)),
		productService: product.NewService(db, cfg),
		config:         cfg,
	}
}

// AddToCartRequest represents an add to cart payload
type AddToCartRequest struct {
	ProductID     string              `json:"product_id" binding:"required"`
	Quantity      int                 `json:"quantity" binding:"required"`
	Customization *cart.Customization `json:"customization"`
}

// UpdateQuantityRequest represents a quantity change payload
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemView is a cart line enriched with its rendered detail rows.
type CartItemView struct {
	cart.LineItem
	Details []cart.DetailRow `json:"details,omitempty"`
}

// CartView is the cart payload returned to the storefront.
type CartView struct {
	Items     []CartItemView `json:"items"`
	Total     float64        `json:"total"`
	ItemCount int            `json:"item_count"`
	StoreSlug string         `json:"store_slug"`
}

func newCartView(c *cart.Cart) *CartView {
	view := &CartView{
		Items:     make([]CartItemView, 0, len(c.Items)),
		Total:     c.Total,
		ItemCount: c.ItemCount,
		StoreSlug: c.StoreSlug,
	}
	for i := range c.Items {
		view.Items = append(view.Items, CartItemView{
			LineItem: c.Items[i],
			Details:  cart.DetailRows(&c.Items[i]),
		})
	}
	return view
}

// cartScope derives the storage scope from the route slug and the optional
// customer header sent by the storefront client.
func cartScope(c *gin.Context) string {
	return cart.Scope(c.Param("slug"), c.GetHeader("X-Customer-ID"))
}

// GetCart handles GET /stores/:slug/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	cartState, err := h.cartService.GetCart(c.Request.Context(), cartScope(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": newCartView(cartState),
	})
}

// AddToCart handles POST /stores/:slug/cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	prod, err := h.productService.GetByID(c.Param("slug"), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	cartState, err := h.cartService.AddToCart(c.Request.Context(), cartScope(c), prod, req.Quantity, req.Customization)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item adicionado ao carrinho",
		"data":    newCartView(cartState),
	})
}

// UpdateQuantity handles PUT /stores/:slug/cart/items/:id
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	cartState, err := h.cartService.UpdateQuantity(c.Request.Context(), cartScope(c), c.Param("id"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": newCartView(cartState),
	})
}

// RemoveFromCart handles DELETE /stores/:slug/cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	cartState, err := h.cartService.RemoveFromCart(c.Request.Context(), cartScope(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removido do carrinho",
		"data":    newCartView(cartState),
	})
}

// ClearCart handles DELETE /stores/:slug/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	cartState, err := h.cartService.ClearCart(c.Request.Context(), cartScope(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Carrinho esvaziado",
		"data":    newCartView(cartState),
	})
}
