package controllers

import (
	"github.com/gin-gonic/gin"

	"cloudnest/services"
	"cloudnest/utils"
)

type ViewController struct {
	viewService *services.ViewService
}

func NewViewController(viewService *services.ViewService) *ViewController {
	return &ViewController{viewService: viewService}
}

// Recent returns the user's assets ordered newest first
func (vc *ViewController) Recent(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	entries, err := vc.viewService.Recent(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Recent assets retrieved successfully", entries)
}

// Starred returns the user's starred assets
func (vc *ViewController) Starred(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	listing, err := vc.viewService.Starred(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Starred assets retrieved successfully", listing)
}

// Pinned returns the user's pinned folders
func (vc *ViewController) Pinned(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	folders, err := vc.viewService.Pinned(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Pinned folders retrieved successfully", folders)
}

// Photos returns the user's image files
func (vc *ViewController) Photos(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	files, err := vc.viewService.Photos(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Photos retrieved successfully", files)
}

// Videos returns the user's video files
func (vc *ViewController) Videos(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	files, err := vc.viewService.Videos(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Videos retrieved successfully", files)
}

// Documents returns the user's document files
func (vc *ViewController) Documents(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	files, err := vc.viewService.Documents(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Documents retrieved successfully", files)
}

// Search returns assets whose name contains the query
func (vc *ViewController) Search(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	query := c.Query("q")
	if query == "" {
		utils.BadRequestResponse(c, "Search query required")
		return
	}

	listing, err := vc.viewService.Search(c.Request.Context(), user.ID, query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Search results retrieved successfully", listing)
}
