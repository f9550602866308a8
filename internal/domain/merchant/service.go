// internal/domain/merchant/service.go
package merchant

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/pkg/auth"
)

// ErrInvalidCredentials is returned for any failed login attempt so the
// response never reveals whether the email exists.
var ErrInvalidCredentials = fmt.Errorf("e-mail ou senha inválidos")

// Service handles merchant account business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new merchant service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// LoginRequest represents merchant login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Merchant     *Merchant `json:"merchant"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
}

// Register provisions a dashboard account for a store.
func (s *Service) Register(storeSlug, name, email, password string) (*Merchant, error) {
	var existing Merchant
	result := s.db.Where("email = ?", strings.ToLower(email)).First(&existing)
	if result.Error == nil {
		return nil, fmt.Errorf("já existe uma conta com este e-mail")
	}

	hashedPassword, err := s.passwordManager.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	m := Merchant{
		ID:        uuid.New().String(),
		StoreSlug: storeSlug,
		Email:     email,
		Password:  hashedPassword,
		Name:      name,
		IsActive:  true,
	}
	if err := s.db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to create merchant: %w", err)
	}

	m.Password = ""
	return &m, nil
}

// Login authenticates a merchant
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var m Merchant
	result := s.db.Where("email = ? AND is_active = ?", strings.ToLower(req.Email), true).First(&m)
	if result.Error != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.passwordManager.VerifyPassword(req.Password, m.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(m.ID, m.StoreSlug, m.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(m.ID, m.StoreSlug, m.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	m.LastLoginAt = &now
	s.db.Save(&m)

	m.Password = ""

	return &AuthResponse{
		Merchant:     &m,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// RefreshToken generates new tokens using refresh token
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	var m Merchant
	result := s.db.Where("id = ? AND is_active = ?", claims.MerchantID, true).First(&m)
	if result.Error != nil {
		return nil, fmt.Errorf("merchant not found or inactive")
	}

	newAccessToken, err := s.jwtManager.GenerateAccessToken(m.ID, m.StoreSlug, m.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken := refreshToken
	if s.config.JWT.RefreshTokenRotation {
		newRefreshToken, err = s.jwtManager.GenerateRefreshToken(m.ID, m.StoreSlug, m.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to generate refresh token: %w", err)
		}
	}

	m.Password = ""

	return &AuthResponse{
		Merchant:     &m,
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// GetProfile gets merchant profile by ID
func (s *Service) GetProfile(merchantID string) (*Merchant, error) {
	var m Merchant
	result := s.db.Where("id = ? AND is_active = ?", merchantID, true).First(&m)
	if result.Error != nil {
		return nil, fmt.Errorf("merchant not found")
	}

	m.Password = ""
	return &m, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(merchantID, current, next string) error {
	var m Merchant
	result := s.db.Where("id = ? AND is_active = ?", merchantID, true).First(&m)
	if result.Error != nil {
		return fmt.Errorf("merchant not found")
	}

	if err := s.passwordManager.VerifyPassword(current, m.Password); err != nil {
		return fmt.Errorf("senha atual incorreta")
	}

	hashed, err := s.passwordManager.HashPassword(next)
	if err != nil {
		return err
	}

	return s.db.Model(&m).Update("password", hashed).Error
}
