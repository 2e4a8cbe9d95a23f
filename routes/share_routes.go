package routes

import (
	"github.com/gin-gonic/gin"

	"cloudnest/controllers"
	"cloudnest/middleware"
)

func ShareRoutes(r *gin.RouterGroup, svc *Services) {
	shareController := controllers.NewShareController(svc.Share)

	shares := r.Group("/shares")
	shares.Use(middleware.AuthMiddleware(svc.Auth))
	{
		shares.POST("", shareController.Create)
		shares.DELETE("/:id", shareController.Revoke)
	}

	// Public share resolution (no auth required)
	r.GET("/shared/:id", shareController.Resolve)
}
