package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/receitanet-bx/internal/api/handlers"
	"github.com/nexconsult/receitanet-bx/internal/api/middleware"
	"github.com/nexconsult/receitanet-bx/internal/config"
	"github.com/nexconsult/receitanet-bx/internal/models"
	"github.com/nexconsult/receitanet-bx/internal/services"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Server represents the HTTP server
type Server struct {
	Router      *gin.Engine
	config      *config.Config
	logger      *logrus.Logger
	services    *services.Container
	rateLimiter *middleware.RateLimiter
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, logger *logrus.Logger, services *services.Container) *Server {
	server := &Server{
		config:   cfg,
		logger:   logger,
		services: services,
	}

	server.setupRouter()
	return server
}

// setupRouter configures the router with all routes and middleware
func (s *Server) setupRouter() {
	s.Router = gin.New()

	// Global middleware
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Logger(s.logger))
	s.Router.Use(middleware.Recovery(s.logger))
	s.Router.Use(middleware.Security())

	healthHandler := handlers.NewHealthHandler(s.services, s.services.Queue, s.logger)
	s.Router.GET("/health", healthHandler.GetHealth)
	s.Router.GET("/health/live", healthHandler.GetLiveness)
	s.Router.GET("/metrics", healthHandler.GetMetrics)

	// Swagger documentation
	if s.config.Server.Environment != "production" {
		s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		s.Router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		})
	}

	// API v1 routes, rate limited
	s.rateLimiter = middleware.NewRateLimiter(s.config.Security.RateLimit)
	v1 := s.Router.Group("/api/v1")
	v1.Use(s.rateLimiter.Middleware())
	{
		downloadHandler := handlers.NewDownloadHandler(s.services.Queue, s.services.JobStore, s.logger)
		downloads := v1.Group("/downloads")
		{
			downloads.POST("", downloadHandler.CreateDownload)
			downloads.GET("/:id", downloadHandler.GetDownload)
		}

		v1.GET("/popups", handlers.GetPopups)
		v1.GET("/systems", handlers.GetSystems)
	}

	s.Router.NoRoute(func(c *gin.Context) {
		resp := models.NewErrorResponse("NOT_FOUND", "The requested resource was not found", gin.H{"path": c.Request.URL.Path})
		resp.SetRequestID(c.GetString(middleware.RequestIDKey))
		c.JSON(http.StatusNotFound, resp)
	})
}

// Close releases resources held by the server
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
