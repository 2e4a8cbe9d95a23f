package routes

import (
	"github.com/gin-gonic/gin"

	"cloudnest/controllers"
	"cloudnest/middleware"
)

func ViewRoutes(r *gin.RouterGroup, svc *Services) {
	viewController := controllers.NewViewController(svc.Views)

	views := r.Group("/views")
	views.Use(middleware.AuthMiddleware(svc.Auth))
	{
		views.GET("/recent", viewController.Recent)
		views.GET("/starred", viewController.Starred)
		views.GET("/pinned", viewController.Pinned)
		views.GET("/photos", viewController.Photos)
		views.GET("/videos", viewController.Videos)
		views.GET("/documents", viewController.Documents)
		views.GET("/search", viewController.Search)
	}
}
