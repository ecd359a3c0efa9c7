package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/warbee0712/lunajoy/config"
	"github.com/warbee0712/lunajoy/controllers"
	"github.com/warbee0712/lunajoy/middlewares"
	"github.com/warbee0712/lunajoy/services"
)

func SetupRouter(cfg *config.Config, hub *services.Hub, authSvc *services.AuthService, logSvc *services.LogService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	authCtl := controllers.NewAuthController(authSvc)
	logCtl := controllers.NewLogController(logSvc)
	rtCtl := controllers.NewRealtimeController(hub)
	limiter := middlewares.NewRateLimiter(middlewares.DefaultRateLimiterConfig())

	auth := r.Group("/auth")
	{
		auth.POST("/google", authCtl.GoogleLogin)
		auth.GET("/me", middlewares.AuthMiddleware(), authCtl.Me)
	}

	r.POST("/log", limiter.Middleware(), logCtl.SubmitLog)

	logs := r.Group("/logs")
	{
		logs.GET("/:userId", logCtl.GetLogs)
		logs.GET("/:userId/range", logCtl.GetLogsByRange)
	}

	r.GET("/ws", rtCtl.HandleWS)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Mental Health Tracker API is running")
	})

	return r
}
