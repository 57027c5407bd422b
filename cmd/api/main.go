package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/auth"
	"resumeapi/internal/config"
	"resumeapi/internal/database"
	"resumeapi/internal/logger"
	"resumeapi/internal/render"
	"resumeapi/internal/server"
	"resumeapi/internal/services"
	"resumeapi/internal/validator"
)

// @title           Resume PDF API
// @version         1.0
// @description     Renders resumes to PDF, issues resume codes and exposes admin queries over the generation log.

// @host      localhost:5000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	env := os.Getenv("ENV")
	if env == "" {
		env = os.Getenv("NODE_ENV")
	}
	logger.Init(env)
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	// The store is optional: PDFs are still served while it is down.
	dbManager, err := database.NewManager(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("closing database failed", "error", err)
		}
	}()

	var logOpts []services.LogOption
	if cfg.AutoMigrate {
		logOpts = append(logOpts, services.WithSchemaSetup(func() error {
			return dbManager.RunMigrations(database.DefaultMigrationsDir)
		}))
	}
	logs := services.NewResumeLogService(dbManager.DB(), cfg.CodeCacheSize, cfg.CodeCacheTTL, logOpts...)

	// Migrations run on the first successful ping, here or on a later request.
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if logs.Available(pingCtx) {
		log.Infow("connected to database")
	} else {
		log.Warnw("database not reachable, resume logs will not be saved until it is")
	}
	cancel()

	composer, err := render.NewComposer(cfg.PublicBaseURL, cfg.TemplatePath, cfg.StylesheetPath)
	if err != nil {
		return fmt.Errorf("failed to create document composer: %w", err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" {
		log.Warnw("JWT_SECRET is not set, admin tokens are signed with the development default")
	}
	guard := auth.NewGuard(cfg.JWTSecret, auth.Credentials{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}, cfg.JWTExpirationDur)

	router := server.NewRouter(server.Deps{
		Config:   cfg,
		Logs:     logs,
		Codes:    services.NewCodeService(logs),
		Guard:    guard,
		Composer: composer,
		Renderer: render.NewRodRenderer(cfg.ChromeBin, render.Timeouts{
			Content: cfg.RenderContentTimeout,
			Image:   cfg.RenderImageTimeout,
			Font:    cfg.RenderFontTimeout,
		}),
	})

	if !cfg.IsProduction() {
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
	}
	return server.New(cfg, router).Run()
}
