package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cloudnest/services"
	"cloudnest/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "")
	case errors.Is(err, services.ErrUnauthorized):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, "An asset with this name already exists at this location")
	case errors.Is(err, services.ErrRemoteUnavailable):
		utils.ServiceUnavailableResponse(c, "Storage backend unavailable")
	case errors.Is(err, services.ErrInvalidShare):
		utils.NotFoundResponse(c, "Share link is invalid or expired")
	case errors.Is(err, services.ErrInvalidName):
		utils.BadRequestResponse(c, "Asset name contains invalid characters")
	default:
		utils.InternalServerErrorResponse(c, "")
	}
}

// listSortFromQuery maps the sort query parameter onto a listing order.
func listSortFromQuery(c *gin.Context) services.ListSort {
	if c.DefaultQuery("sort", "name") == "date" {
		return services.SortByDateDesc
	}
	return services.SortByNameDesc
}
