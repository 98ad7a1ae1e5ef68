package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uni-analytics/backend/config"
	"uni-analytics/backend/internal/api/handler"
	"uni-analytics/backend/internal/api/middleware"
	"uni-analytics/backend/pkg/jwt"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", h.Auth.Login)

	api := r.Group("/api")
	api.Use(middleware.JWTAuth(jwtMgr))
	{
		api.POST("/lab1/report", h.Attendance.Report)
		api.GET("/lab1/report/export", h.Attendance.Export)
		api.POST("/lab2/report", h.Classroom.Report)
		api.POST("/lab3/report", h.Group.Report)
	}

	return r
}
