// internal/interfaces/http/handlers/errors_test.go
package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/your-org/delivery-backend/internal/domain/cart"
	"github.com/your-org/delivery-backend/internal/domain/checkout"
	"github.com/your-org/delivery-backend/internal/domain/order"
	"github.com/your-org/delivery-backend/internal/domain/store"
	"github.com/your-org/delivery-backend/internal/domain/upload"
)

func recordRespondError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w
}

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid quantity is a bad request", cart.ErrInvalidQuantity, http.StatusBadRequest},
		{"nil product is a bad request", cart.ErrNilProduct, http.StatusBadRequest},
		{"empty cart is a bad request", checkout.ErrEmptyCart, http.StatusBadRequest},
		{"store not found", store.ErrStoreNotFound, http.StatusNotFound},
		{"order not found", order.ErrOrderNotFound, http.StatusNotFound},
		{"duplicate submission conflicts", checkout.ErrDuplicateSubmission, http.StatusConflict},
		{"closed store conflicts", checkout.ErrStoreClosed, http.StatusConflict},
		{"oversized upload", upload.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := recordRespondError(t, tt.err)
			require.Equal(t, tt.status, w.Code)
			require.Contains(t, w.Body.String(), tt.err.Error())
		})
	}
}

func TestRespondError_UnknownErrorStaysGeneric(t *testing.T) {
	w := recordRespondError(t, errors.New("dial tcp: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), genericErrorMessage)
	require.NotContains(t, w.Body.String(), "dial tcp")
}

func TestRespondError_MinimumOrderCarriesShortfall(t *testing.T) {
	w := recordRespondError(t, &checkout.MinimumOrderError{Minimum: 15, Subtotal: 10, Shortfall: 5})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), `"shortfall":5`)
	require.Contains(t, w.Body.String(), "5,00")
}
