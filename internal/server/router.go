// Package server assembles the HTTP surface and runs it with graceful shutdown.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"resumeapi/internal/auth"
	"resumeapi/internal/config"
	"resumeapi/internal/handlers"
	"resumeapi/internal/middleware"
	"resumeapi/internal/render"
	"resumeapi/internal/services"

	_ "resumeapi/internal/docs" // Import swagger docs
)

// MaxBodyBytes bounds request bodies; resume HTML with inline images can be large.
const MaxBodyBytes = 10 << 20

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logs     services.ResumeLogServicer
	Codes    services.CodeGenerator
	Guard    *auth.Guard
	Composer handlers.DocumentComposer
	Renderer render.Renderer
}

// NewRouter builds the gin engine with every route of the service.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config

	pdfHandler := handlers.NewPDFHandler(d.Codes, d.Logs, d.Composer, d.Renderer)
	adminHandler := handlers.NewAdminHandler(d.Guard, d.Logs)
	healthHandler := handlers.NewHealthHandler(cfg, d.Logs)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())
	router.Use(middleware.BodyLimit(MaxBodyBytes))
	router.Use(middleware.ErrorHandler())

	router.POST("/generate-pdf", pdfHandler.GeneratePDF)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", middleware.MetricsAuth(cfg.MetricsAPIKey), gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/test", healthHandler.APITest)
	api.POST("/admin-login", adminHandler.Login)
	api.POST("/admin-logout", adminHandler.Logout)

	// Protected routes
	admin := api.Group("/")
	admin.Use(middleware.AdminAuth(d.Guard))
	admin.GET("/admin-logs", adminHandler.Logs)
	admin.GET("/admin-user-stats", adminHandler.UserStats)
	admin.POST("/admin-validate-code", adminHandler.ValidateCode)

	var frontend *handlers.FrontendHandler
	if !cfg.IsProduction() {
		api.GET("/debug", healthHandler.Debug)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		if frontend = handlers.NewFrontendHandler(cfg.FrontendDir); frontend != nil {
			frontend.Register(router)
		}
	}
	router.NoRoute(handlers.NotFound(frontend))

	return router
}
