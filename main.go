package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"cloudnest/config"
	"cloudnest/database"
	"cloudnest/routes"
	"cloudnest/services"
	"cloudnest/storage"
	"cloudnest/utils"
)

func main() {
	app, err := NewApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// Application represents the main application structure
type Application struct {
	config *config.Config
	server *http.Server
	router *gin.Engine
	remote storage.RemoteStorage
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	cfg := config.LoadConfig()
	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}
	utils.ConfigureTokens(cfg.JWTSecret, cfg.AccessTokenTTL)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := setupRouter(cfg)

	app := &Application{
		config: cfg,
		router: router,
		server: &http.Server{
			Addr:         cfg.GetServerAddress(),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	return app, nil
}

// Start initializes all components and starts the HTTP server
func (app *Application) Start() error {
	log.Printf("Starting %s v%s in %s mode",
		app.config.AppName,
		app.config.AppVersion,
		app.config.Environment)

	if err := app.initializeDatabase(); err != nil {
		return err
	}

	if err := app.initializeStorage(); err != nil {
		return err
	}

	app.setupRoutes()

	go func() {
		log.Printf("Server starting on %s", app.server.Addr)
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()

	return nil
}

// initializeDatabase sets up the database connection and indexes
func (app *Application) initializeDatabase() error {
	log.Println("Initializing database...")

	if err := database.Connect(app.config.MongoURI, app.config.DBName); err != nil {
		return err
	}

	if err := database.CreateIndexes(); err != nil {
		return err
	}

	log.Println("Database initialization completed successfully")
	return nil
}

// initializeStorage sets up the remote storage client
func (app *Application) initializeStorage() error {
	log.Println("Initializing storage subsystem...")

	remote, err := storage.NewRemoteStorage(app.config.Provider())
	if err != nil {
		return err
	}
	if err := remote.HealthCheck(); err != nil {
		log.Printf("Warning: storage health check failed: %v", err)
	}

	app.remote = remote
	log.Println("Storage subsystem initialization completed successfully")
	return nil
}

// setupRoutes configures all application routes and middleware
func (app *Application) setupRoutes() {
	store := services.NewAssetService()

	svc := &routes.Services{
		Auth:  services.NewAuthService(store, app.remote),
		Sync:  services.NewSyncService(store, app.remote),
		Views: services.NewViewService(store),
		Share: services.NewShareService(store),
	}

	routes.SetupRoutes(app.router, svc, app.config.CORSAllowedOrigins)
	log.Println("Routes configured successfully")
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	router.Use(gin.Recovery())

	// Health check endpoint (before other middleware)
	router.GET("/health", healthCheckHandler())

	if cfg.StorageProvider == "local" {
		router.Static("/objects", cfg.UploadPath)
	}

	return router
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutdown signal received...")

	app.shutdown()
}

// shutdown gracefully shuts down the application
func (app *Application) shutdown() {
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := database.Disconnect(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Server shutdown complete")
}

// Health check handler for monitoring
func healthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"service":   config.AppConfig.AppName,
			"version":   config.AppConfig.AppVersion,
			"timestamp": time.Now().Unix(),
		}

		if database.GetDatabase() != nil {
			if err := database.Ping(); err != nil {
				health["status"] = "degraded"
				health["database"] = "unhealthy"
			} else {
				health["database"] = "healthy"
			}
		}

		c.JSON(http.StatusOK, health)
	}
}
