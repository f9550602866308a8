// internal/pkg/auth/password_test.go
package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/your-org/delivery-backend/internal/config"
)

func testPasswordManager() *PasswordManager {
	cfg := &config.Config{}
	cfg.Security.BcryptCost = 4 // minimum cost keeps the test fast
	return NewPasswordManager(cfg)
}

func TestValidatePassword(t *testing.T) {
	pm := testPasswordManager()

	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "pizzaria123", ""},
		{"too short", "abc1", "pelo menos 8 caracteres"},
		{"too long", strings.Repeat("a1", 70), "no máximo 128 caracteres"},
		{"only letters", "senhasemnumero", "letras e números"},
		{"only numbers", "12345678", "letras e números"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pm.ValidatePassword(tt.password)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := testPasswordManager()

	hash, err := pm.HashPassword("pizzaria123")
	require.NoError(t, err)
	require.NotEqual(t, "pizzaria123", hash)

	require.NoError(t, pm.VerifyPassword("pizzaria123", hash))
	require.Error(t, pm.VerifyPassword("senhaerrada1", hash))
}

func TestHashPasswordRejectsWeakPassword(t *testing.T) {
	pm := testPasswordManager()

	_, err := pm.HashPassword("curta1")
	require.Error(t, err)
}
