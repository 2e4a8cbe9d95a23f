package controllers

import (
	"github.com/gin-gonic/gin"

	"cloudnest/models"
	"cloudnest/services"
	"cloudnest/utils"
)

type ShareController struct {
	shareService *services.ShareService
}

func NewShareController(shareService *services.ShareService) *ShareController {
	return &ShareController{shareService: shareService}
}

// Create issues a share link for a file or folder
func (sc *ShareController) Create(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	var req models.ShareCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}
	if !utils.IsValidObjectID(req.AssetID) {
		utils.BadRequestResponse(c, "Invalid asset ID")
		return
	}

	assetID, _ := utils.StringToObjectID(req.AssetID)
	share, err := sc.shareService.GenerateLink(c.Request.Context(), user.ID, assetID, req.AssetType, models.ShareDuration(req.Duration))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Share link created successfully", share)
}

// Resolve returns the shared asset snapshot; no authentication required
func (sc *ShareController) Resolve(c *gin.Context) {
	shareID := c.Param("id")
	if shareID == "" {
		utils.BadRequestResponse(c, "Share ID required")
		return
	}

	share, err := sc.shareService.ResolveLink(c.Request.Context(), shareID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Share resolved successfully", share)
}

// Revoke deletes a share link the caller issued
func (sc *ShareController) Revoke(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	shareID := c.Param("id")
	if shareID == "" {
		utils.BadRequestResponse(c, "Share ID required")
		return
	}

	if err := sc.shareService.RevokeLink(c.Request.Context(), user.ID, shareID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Share link revoked successfully", nil)
}
