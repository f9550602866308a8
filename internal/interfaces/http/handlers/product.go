// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/product"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productService *product.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(db *gorm.DB, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: product.NewService(db, cfg),
		config:         cfg,
	}
}

// ListProducts handles GET /stores/:slug/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListByStore(c.Param("slug"), true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
	})
}

// GetProduct handles GET /stores/:slug/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	prod, err := h.productService.GetByID(c.Param("slug"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": prod,
	})
}

// DashboardListProducts handles GET /dashboard/stores/:slug/products.
// Inactive products are included so the merchant can manage them.
func (h *ProductHandler) DashboardListProducts(c *gin.Context) {
	products, err := h.productService.ListByStore(c.Param("slug"), false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
	})
}

// CreateProduct handles POST /dashboard/stores/:slug/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	prod, err := h.productService.Create(c.Param("slug"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Produto criado",
		"data":    prod,
	})
}

// UpdateProduct handles PUT /dashboard/stores/:slug/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req product.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	prod, err := h.productService.Update(c.Param("slug"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produto atualizado",
		"data":    prod,
	})
}

// UpdateCompositionRequest replaces a product's ingredients and addons.
type UpdateCompositionRequest struct {
	Ingredients []product.IngredientInput `json:"ingredients"`
	Addons      []product.AddonInput      `json:"addons"`
}

// UpdateComposition handles PUT /dashboard/stores/:slug/products/:id/composition
func (h *ProductHandler) UpdateComposition(c *gin.Context) {
	var req UpdateCompositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	prod, err := h.productService.UpdateComposition(c.Param("slug"), c.Param("id"), req.Ingredients, req.Addons)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Composição atualizada",
		"data":    prod,
	})
}

// ListCategories handles GET /stores/:slug/categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.ListCategories(c.Param("slug"), true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": categories,
	})
}

// DashboardListCategories handles GET /dashboard/stores/:slug/categories
func (h *ProductHandler) DashboardListCategories(c *gin.Context) {
	categories, err := h.productService.ListCategories(c.Param("slug"), false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": categories,
	})
}

// CreateCategory handles POST /dashboard/stores/:slug/categories
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req product.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	cat, err := h.productService.CreateCategory(c.Param("slug"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Categoria criada",
		"data":    cat,
	})
}

// UpdateCategory handles PUT /dashboard/stores/:slug/categories/:id
func (h *ProductHandler) UpdateCategory(c *gin.Context) {
	var req product.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	cat, err := h.productService.UpdateCategory(c.Param("slug"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categoria atualizada",
		"data":    cat,
	})
}

// DeleteCategory handles DELETE /dashboard/stores/:slug/categories/:id
func (h *ProductHandler) DeleteCategory(c *gin.Context) {
	if err := h.productService.DeleteCategory(c.Param("slug"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categoria removida",
	})
}

// DeleteProduct handles DELETE /dashboard/stores/:slug/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Param("slug"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produto removido",
	})
}
