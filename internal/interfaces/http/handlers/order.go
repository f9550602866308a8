// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/order"
	"github.com/your-org/delivery-backend/internal/domain/store"
	"github.com/your-org/delivery-backend/internal/pkg/pdf"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
	storeService *store.Service
	pdfService   *pdf.Service
	config       *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		orderService: order.NewService(db, cfg),
		storeService: store.NewService(db, cfg),
		pdfService:   pdf.NewService(cfg),
		config:       cfg,
	}
}

// ListCustomerOrders handles GET /stores/:slug/orders. The storefront sends
// its customer id in a header; without it there is no history to show.
func (h *OrderHandler) ListCustomerOrders(c *gin.Context) {
	customerID := c.GetHeader("X-Customer-ID")
	if customerID == "" {
		c.JSON(http.StatusOK, gin.H{"data": []order.Order{}})
		return
	}

	orders, err := h.orderService.ListByCustomer(c.Param("slug"), customerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
	})
}

// GetOrder handles GET /stores/:slug/orders/:number
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.orderService.GetByNumber(c.Param("slug"), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": o,
	})
}

// DashboardListOrders handles GET /dashboard/stores/:slug/orders
func (h *OrderHandler) DashboardListOrders(c *gin.Context) {
	req := &order.ListRequest{
		Status: order.OrderStatus(c.Query("status")),
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		req.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		req.Offset = offset
	}

	orders, err := h.orderService.ListByStore(c.Param("slug"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
	})
}

// UpdateStatusRequest advances an order through its lifecycle.
type UpdateStatusRequest struct {
	Status order.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus handles PUT /dashboard/stores/:slug/orders/:number/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	o, err := h.orderService.UpdateStatus(c.Param("slug"), c.Param("number"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status do pedido atualizado",
		"data":    o,
	})
}

// CancelOrder handles PUT /dashboard/stores/:slug/orders/:number/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	o, err := h.orderService.Cancel(c.Param("slug"), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pedido cancelado",
		"data":    o,
	})
}

// MarkPaid handles PUT /dashboard/stores/:slug/orders/:number/paid
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	o, err := h.orderService.MarkPaid(c.Param("slug"), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pagamento confirmado",
		"data":    o,
	})
}

// GetReceipt handles GET /dashboard/stores/:slug/orders/:number/receipt
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	slug := c.Param("slug")

	st, err := h.storeService.GetBySlug(slug)
	if err != nil {
		respondError(c, err)
		return
	}

	o, err := h.orderService.GetByNumber(slug, c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := h.pdfService.GenerateReceipt(st, o)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", o.OrderNumber))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
