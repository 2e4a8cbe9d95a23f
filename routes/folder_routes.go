package routes

import (
	"github.com/gin-gonic/gin"

	"cloudnest/controllers"
	"cloudnest/middleware"
)

func FolderRoutes(r *gin.RouterGroup, svc *Services) {
	folderController := controllers.NewFolderController(svc.Sync, svc.Views)

	folders := r.Group("/folders")
	folders.Use(middleware.AuthMiddleware(svc.Auth))
	{
		folders.GET("", folderController.List)
		folders.POST("", folderController.Create)
		folders.PUT("/:id/rename", folderController.Rename)
		folders.DELETE("/:id", folderController.Delete)
		folders.POST("/:id/star", folderController.ToggleStar)
		folders.POST("/:id/pin", folderController.TogglePin)
	}
}
