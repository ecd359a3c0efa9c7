package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warbee0712/lunajoy/models"
	"github.com/warbee0712/lunajoy/services"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type googleLoginInput struct {
	Token string `json:"token"`
}

// GoogleLogin exchanges a Google ID token for a session token.
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	var input googleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token missing"})
		return
	}

	token, user, err := ac.Auth.GoogleLogin(c.Request.Context(), input.Token)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredential) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the user the session token was issued to.
func (ac *AuthController) Me(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	c.JSON(http.StatusOK, gin.H{"user": user})
}
