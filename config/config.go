package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/warbee0712/lunajoy/models"
)

var DB *gorm.DB

// Config holds the process-level settings read once at startup.
type Config struct {
	Port           string
	GoogleClientID string
	JWTSecret      string
	AllowedOrigin  string
}

// Load reads settings from the environment (.env is picked up when present).
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getenv("PORT", "5000"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigin:  getenv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}

	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is not set")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.MentalHealthLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}
