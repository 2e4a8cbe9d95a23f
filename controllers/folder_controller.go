package controllers

import (
	"github.com/gin-gonic/gin"

	"cloudnest/models"
	"cloudnest/services"
	"cloudnest/utils"
)

type FolderController struct {
	syncService *services.SyncService
	viewService *services.ViewService
}

func NewFolderController(syncService *services.SyncService, viewService *services.ViewService) *FolderController {
	return &FolderController{
		syncService: syncService,
		viewService: viewService,
	}
}

// List returns the direct children of a folder path
func (fc *FolderController) List(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	path := c.Query("path")
	if path == "" {
		path = user.RootPath()
	}

	listing, err := fc.viewService.ListFolder(c.Request.Context(), user.ID, path, listSortFromQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder contents retrieved successfully", listing)
}

// Create creates a new folder
func (fc *FolderController) Create(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	var req models.FolderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	folder, err := fc.syncService.CreateFolder(c.Request.Context(), user.ID, req.Location, req.Name, req.Starred)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Folder created successfully", folder)
}

// Rename renames a folder and rewrites descendant paths
func (fc *FolderController) Rename(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	folderID := c.Param("id")
	if !utils.IsValidObjectID(folderID) {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	var req models.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	objID, _ := utils.StringToObjectID(folderID)
	folder, err := fc.syncService.RenameFolder(c.Request.Context(), user.ID, objID, req.NewName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder renamed successfully", folder)
}

// Delete removes a folder and everything under it
func (fc *FolderController) Delete(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	folderID := c.Param("id")
	if !utils.IsValidObjectID(folderID) {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	objID, _ := utils.StringToObjectID(folderID)
	if err := fc.syncService.DeleteFolder(c.Request.Context(), user.ID, objID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder deleted successfully", nil)
}

// ToggleStar flips a folder's starred flag
func (fc *FolderController) ToggleStar(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	folderID := c.Param("id")
	if !utils.IsValidObjectID(folderID) {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	objID, _ := utils.StringToObjectID(folderID)
	starred, err := fc.syncService.ToggleFolderStar(c.Request.Context(), user.ID, objID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder star toggled", gin.H{"starred": starred})
}

// TogglePin flips a folder's pinned flag
func (fc *FolderController) TogglePin(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	folderID := c.Param("id")
	if !utils.IsValidObjectID(folderID) {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	objID, _ := utils.StringToObjectID(folderID)
	pinned, err := fc.syncService.ToggleFolderPin(c.Request.Context(), user.ID, objID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder pin toggled", gin.H{"pinned": pinned})
}
