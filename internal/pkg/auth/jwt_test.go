// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/your-org/delivery-backend/internal/config"
)

func testJWTManager() *JWTManager {
	cfg := &config.Config{}
	cfg.App.Name = "Delivery Backend"
	cfg.JWT.Secret = "test-secret-key-with-at-least-32-chars!!"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	return NewJWTManager(cfg)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	jm := testJWTManager()

	token, err := jm.GenerateAccessToken("merchant-1", "pizzaria-do-bairro", "dono@pizzaria.example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jm.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "merchant-1", claims.MerchantID)
	require.Equal(t, "pizzaria-do-bairro", claims.StoreSlug)
	require.Equal(t, "dono@pizzaria.example.com", claims.Email)
	require.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	jm := testJWTManager()

	refresh, err := jm.GenerateRefreshToken("merchant-1", "pizzaria-do-bairro", "dono@pizzaria.example.com")
	require.NoError(t, err)

	_, err = jm.ValidateAccessToken(refresh)
	require.Error(t, err)

	claims, err := jm.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, "refresh", claims.TokenType)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	jm := testJWTManager()

	token, err := jm.GenerateAccessToken("merchant-1", "pizzaria-do-bairro", "dono@pizzaria.example.com")
	require.NoError(t, err)

	other := testJWTManager()
	other.config.JWT.Secret = "another-secret-key-with-32-characters!!"

	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	jm := testJWTManager()
	jm.config.JWT.AccessTokenExpiry = -time.Minute

	token, err := jm.GenerateAccessToken("merchant-1", "pizzaria-do-bairro", "dono@pizzaria.example.com")
	require.NoError(t, err)

	_, err = jm.ValidateToken(token)
	require.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	require.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	require.Equal(t, "", ExtractTokenFromHeader("abc.def.ghi"))
	require.Equal(t, "", ExtractTokenFromHeader(""))
	require.Equal(t, "", ExtractTokenFromHeader("Bearer"))
}
