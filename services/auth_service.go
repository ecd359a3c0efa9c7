package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/warbee0712/lunajoy/config"
	"github.com/warbee0712/lunajoy/models"
	"github.com/warbee0712/lunajoy/utils"
)

// AuthService exchanges a Google credential for a signed session token.
type AuthService struct {
	verifier *GoogleVerifier
}

func NewAuthService(verifier *GoogleVerifier) *AuthService {
	return &AuthService{verifier: verifier}
}

// GoogleLogin verifies the ID token, creates the user on first sign-in, and
// returns a signed session JWT together with the user record.
func (s *AuthService) GoogleLogin(ctx context.Context, rawToken string) (string, *models.User, error) {
	identity, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return "", nil, err
	}

	var user models.User
	err = config.DB.First(&user, "id = ?", identity.Sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:      identity.Sub,
			Email:   identity.Email,
			Name:    identity.Name,
			Picture: identity.Picture,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			return "", nil, fmt.Errorf("create user: %w", err)
		}
		slog.Info("new user registered", "userId", user.ID, "email", user.Email)
	} else if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	return token, &user, nil
}
