// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/delivery-backend/internal/domain/cart"
	"github.com/your-org/delivery-backend/internal/domain/checkout"
	"github.com/your-org/delivery-backend/internal/domain/order"
	"github.com/your-org/delivery-backend/internal/domain/product"
	"github.com/your-org/delivery-backend/internal/domain/store"
	"github.com/your-org/delivery-backend/internal/domain/upload"
	"github.com/your-org/delivery-backend/internal/pkg/cep"
)

const genericErrorMessage = "Algo deu errado. Tente novamente em instantes."

// respondError translates domain errors into HTTP responses. Unknown errors
// collapse to a generic message so internals never leak to the storefront.
func respondError(c *gin.Context, err error) {
	var minErr *checkout.MinimumOrderError
	if errors.As(err, &minErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     minErr.Error(),
			"minimum":   minErr.Minimum,
			"subtotal":  minErr.Subtotal,
			"shortfall": minErr.Shortfall,
		})
		return
	}

	var valErr *checkout.ValidationError
	if errors.As(err, &valErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Verifique os campos destacados.",
			"fields": valErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, store.ErrStoreNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, product.ErrCategoryNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, cep.ErrCEPNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrNilProduct),
		errors.Is(err, cep.ErrInvalidCEP),
		errors.Is(err, upload.ErrInvalidKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, checkout.ErrStoreClosed),
		errors.Is(err, checkout.ErrDuplicateSubmission),
		errors.Is(err, order.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, upload.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})

	case errors.Is(err, upload.ErrInvalidFileType):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
	}
}

// respondBadRequest reports malformed payloads with binding details.
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Dados da requisição inválidos.",
		"details": err.Error(),
	})
}
