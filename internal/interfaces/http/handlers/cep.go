// internal/interfaces/http/handlers/cep.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/delivery-backend/internal/pkg/cep"
)

// CEPHandler handles postal-code lookups used to pre-fill the checkout form
type CEPHandler struct {
	client *cep.Client
}

// NewCEPHandler creates a new CEP handler
func NewCEPHandler() *CEPHandler {
	return &CEPHandler{
		client: cep.NewClient(),
	}
}

// Lookup handles GET /cep/:code
func (h *CEPHandler) Lookup(c *gin.Context) {
	addr, err := h.client.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": addr,
	})
}
