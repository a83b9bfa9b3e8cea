package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/api/handler"
	"github.com/faizm10/DressToImpress-sub000/internal/api/middleware"
	"github.com/faizm10/DressToImpress-sub000/pkg/jwt"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute

	submitRateLimit  = 5
	submitRateWindow = time.Minute
)

// Setup builds the gin engine.
// blacklist and limiter may be nil when Redis is unavailable.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	blacklist middleware.TokenBlacklist,
	limiter middleware.Limiter,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// public
		v1.POST("/auth/login", middleware.RateLimit(limiter, loginRateLimit, loginRateWindow), h.Auth.Login)

		catalog := v1.Group("/catalog")
		{
			catalog.GET("/attires", h.Catalog.List)
			catalog.GET("/attires/:id/availability", h.Catalog.Availability)
			catalog.GET("/categories", h.Catalog.Categories)
			catalog.POST("/requests", middleware.RateLimit(limiter, submitRateLimit, submitRateWindow), h.Catalog.Request)
		}

		v1.GET("/content/home", h.Content.Get)
		v1.GET("/files/*path", h.File.Image)

		// staff only
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist, logger))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			students := authorized.Group("/students")
			{
				students.GET("", h.Student.List)
				students.POST("", h.Student.Create)
				students.GET("/:id", h.Student.Get)
				students.PATCH("/:id", h.Student.Update)
				students.DELETE("/:id", h.Student.Delete)
			}

			attires := authorized.Group("/attires")
			{
				attires.GET("", h.Attire.List)
				attires.POST("", h.Attire.Create)
				attires.GET("/categories", h.Attire.Categories)
				attires.GET("/:id", h.Attire.Get)
				attires.PATCH("/:id", h.Attire.Update)
				attires.DELETE("/:id", h.Attire.Delete)
			}

			requests := authorized.Group("/requests")
			{
				requests.GET("", h.AttireRequest.List)
				requests.POST("", h.AttireRequest.Create)
				requests.GET("/:id", h.AttireRequest.Get)
				requests.PATCH("/:id/status", h.AttireRequest.UpdateStatus)
				requests.PATCH("/:id/buffer", h.AttireRequest.UpdateBuffer)
				requests.PATCH("/:id/attire", h.AttireRequest.SwitchAttire)
				requests.DELETE("/:id", h.AttireRequest.Delete)
			}

			authorized.GET("/calendar", h.Calendar.Month)
			authorized.GET("/calendar.ics", h.Calendar.ICS)

			authorized.GET("/export/requests", h.Export.ExportRequests)

			content := authorized.Group("/content/home")
			{
				content.POST("", h.Content.Save)
				content.PUT("", h.Content.Save)
				content.POST("/reset", h.Content.Reset)
				content.GET("/history", h.Content.History)
			}

			authorized.POST("/notifications/email", h.Notification.SendEmail)
		}
	}

	return r
}
