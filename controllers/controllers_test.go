package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/warbee0712/lunajoy/config"
	"github.com/warbee0712/lunajoy/models"
	"github.com/warbee0712/lunajoy/routes"
	"github.com/warbee0712/lunajoy/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router   *gin.Engine
	hub      *services.Hub
	verifier *services.GoogleVerifier
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.MentalHealthLog{}))
	config.DB = db

	cfg := &config.Config{
		Port:           "0",
		GoogleClientID: "test-client-id",
		JWTSecret:      "test-secret",
		AllowedOrigin:  "http://localhost:3000",
	}

	hub := services.NewHub()
	verifier := services.NewGoogleVerifier(cfg.GoogleClientID)
	authSvc := services.NewAuthService(verifier)
	logSvc := services.NewLogService(hub)

	return &testApp{
		router:   routes.SetupRouter(cfg, hub, authSvc, logSvc),
		hub:      hub,
		verifier: verifier,
	}
}

func (a *testApp) createUser(t *testing.T, id string) models.User {
	t.Helper()
	user := models.User{ID: id, Email: id + "@example.com", Name: "Test User"}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}
