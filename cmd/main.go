package main

import (
	"log/slog"

	"github.com/warbee0712/lunajoy/config"
	"github.com/warbee0712/lunajoy/routes"
	"github.com/warbee0712/lunajoy/services"
)

func main() {
	cfg := config.Load()
	config.InitDB()

	hub := services.NewHub()
	verifier := services.NewGoogleVerifier(cfg.GoogleClientID)
	authSvc := services.NewAuthService(verifier)
	logSvc := services.NewLogService(hub)

	r := routes.SetupRouter(cfg, hub, authSvc, logSvc)

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
	}
}
