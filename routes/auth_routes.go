package routes

import (
	"github.com/gin-gonic/gin"

	"cloudnest/controllers"
	"cloudnest/middleware"
)

func AuthRoutes(r *gin.RouterGroup, svc *Services) {
	authController := controllers.NewAuthController(svc.Auth)

	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware())
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
	}

	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware(svc.Auth))
	{
		me.GET("", authController.Me)
	}
}
