package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cloudnest/models"
	"cloudnest/services"
	"cloudnest/utils"
)

type FileController struct {
	syncService *services.SyncService
}

func NewFileController(syncService *services.SyncService) *FileController {
	return &FileController{syncService: syncService}
}

// Upload stores one or more files into a folder
func (fc *FileController) Upload(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form")
		return
	}

	parts := form.File["files"]
	if len(parts) == 0 {
		utils.BadRequestResponse(c, "No files provided")
		return
	}

	location := c.PostForm("location")
	if location == "" {
		location = user.RootPath()
	}
	starred, _ := strconv.ParseBool(c.DefaultPostForm("starred", "false"))

	uploads := make([]services.FileUpload, 0, len(parts))
	for _, part := range parts {
		data, contentType, err := utils.ReadMultipartFile(part)
		if err != nil {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		uploads = append(uploads, services.FileUpload{
			Name:        part.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}

	files, err := fc.syncService.UploadFiles(c.Request.Context(), user.ID, location, uploads, starred)
	if err != nil {
		// Files stored before the failure stay recorded.
		if len(files) > 0 {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Upload partially failed", map[string]interface{}{
				"uploaded": files,
			})
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Files uploaded successfully", files)
}

// Rename renames a file
func (fc *FileController) Rename(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	fileID := c.Param("id")
	if !utils.IsValidObjectID(fileID) {
		utils.BadRequestResponse(c, "Invalid file ID")
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

	objID, _ := utils.StringToObjectID(fileID)
	file, err := fc.syncService.RenameFile(c.Request.Context(), user.ID, objID, req.NewName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "File renamed successfully", file)
}

// Delete removes a file
func (fc *FileController) Delete(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	fileID := c.Param("id")
	if !utils.IsValidObjectID(fileID) {
		utils.BadRequestResponse(c, "Invalid file ID")
		return
	}

	objID, _ := utils.StringToObjectID(fileID)
	if err := fc.syncService.DeleteFile(c.Request.Context(), user.ID, objID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "File deleted successfully", nil)
}

// ToggleStar flips a file's starred flag
func (fc *FileController) ToggleStar(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	fileID := c.Param("id")
	if !utils.IsValidObjectID(fileID) {
		utils.BadRequestResponse(c, "Invalid file ID")
		return
	}

	objID, _ := utils.StringToObjectID(fileID)
	starred, err := fc.syncService.ToggleFileStar(c.Request.Context(), user.ID, objID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "File star toggled", gin.H{"starred": starred})
}

// DownloadURL resolves a short-lived download link
func (fc *FileController) DownloadURL(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	fileID := c.Param("id")
	if !utils.IsValidObjectID(fileID) {
		utils.BadRequestResponse(c, "Invalid file ID")
		return
	}

	attachment, _ := strconv.ParseBool(c.DefaultQuery("attachment", "false"))

	objID, _ := utils.StringToObjectID(fileID)
	url, err := fc.syncService.DownloadURL(c.Request.Context(), user.ID, objID, attachment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Download URL resolved", gin.H{"url": url})
}
