package routes

import (
	"github.com/gin-gonic/gin"

	"cloudnest/middleware"
	"cloudnest/services"
)

// Services bundles the service layer handed to the route groups.
type Services struct {
	Auth  *services.AuthService
	Sync  *services.SyncService
	Views *services.ViewService
	Share *services.ShareService
}

func SetupRoutes(r *gin.Engine, svc *Services, allowedOrigins []string) {
	// Global middleware
	r.Use(middleware.CORSMiddleware(allowedOrigins))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(gin.Recovery())

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimitMiddleware())
	{
		// Public routes
		AuthRoutes(v1, svc)

		// Protected routes
		FileRoutes(v1, svc)
		FolderRoutes(v1, svc)
		ViewRoutes(v1, svc)
		ShareRoutes(v1, svc)
	}
}
