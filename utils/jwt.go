package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/warbee0712/lunajoy/models"
)

// GenerateJWT signs a session token carrying the user record, matching what
// the client decodes to restore its session.
func GenerateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":      user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"picture": user.Picture,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// ParseJWT validates a session token and returns the user it was issued to.
func ParseJWT(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	user := &models.User{}
	user.ID, _ = claims["id"].(string)
	user.Email, _ = claims["email"].(string)
	user.Name, _ = claims["name"].(string)
	user.Picture, _ = claims["picture"].(string)
	if user.ID == "" {
		return nil, errors.New("token missing subject")
	}
	return user, nil
}
