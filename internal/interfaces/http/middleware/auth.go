// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/pkg/auth"
)

// AuthMiddleware creates JWT authentication middleware for dashboard routes
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Sessão expirada. Faça login novamente.",
			})
			c.Abort()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Sessão expirada. Faça login novamente.",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Sessão expirada. Faça login novamente.",
			})
			c.Abort()
			return
		}

		// Store merchant information in context
		c.Set("merchant_id", claims.MerchantID)
		c.Set("merchant_email", claims.Email)
		c.Set("store_slug", claims.StoreSlug)
		c.Set("token_claims", claims)

		c.Next()
	}
}

// StoreAccessMiddleware ensures the authenticated merchant owns the store
// named in the route. Must run after AuthMiddleware.
func StoreAccessMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownedSlug, exists := c.Get("store_slug")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Sessão expirada. Faça login novamente.",
			})
			c.Abort()
			return
		}

		routeSlug := c.Param("slug")
		if routeSlug != "" && routeSlug != ownedSlug.(string) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Você não tem permissão para acessar esta loja.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetMerchantIDFromContext extracts the merchant ID from gin context
func GetMerchantIDFromContext(c *gin.Context) (string, bool) {
	merchantID, exists := c.Get("merchant_id")
	if !exists {
		return "", false
	}
	return merchantID.(string), true
}

// GetStoreSlugFromContext extracts the merchant's store slug from gin context
func GetStoreSlugFromContext(c *gin.Context) (string, bool) {
	slug, exists := c.Get("store_slug")
	if !exists {
		return "", false
	}
	return slug.(string), true
}
