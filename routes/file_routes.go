package routes

import (
	"github.com/gin-gonic/gin"

	"cloudnest/controllers"
	"cloudnest/middleware"
)

func FileRoutes(r *gin.RouterGroup, svc *Services) {
	fileController := controllers.NewFileController(svc.Sync)

	files := r.Group("/files")
	files.Use(middleware.AuthMiddleware(svc.Auth))
	{
		files.POST("/upload", middleware.UploadRateLimitMiddleware(), fileController.Upload)
		files.PUT("/:id/rename", fileController.Rename)
		files.DELETE("/:id", fileController.Delete)
		files.POST("/:id/star", fileController.ToggleStar)
		files.GET("/:id/download", middleware.RateLimitWithType("download"), fileController.DownloadURL)
	}
}
