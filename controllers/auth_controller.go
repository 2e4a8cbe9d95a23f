package controllers

import (
	"github.com/gin-gonic/gin"

	"cloudnest/models"
	"cloudnest/services"
	"cloudnest/utils"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Signup registers a new account and provisions its root folder
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	user, token, err := ac.authService.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Account created successfully", gin.H{
		"user":         user,
		"access_token": token,
		"expires_in":   utils.AccessTokenTTL(),
		"token_type":   "Bearer",
	})
}

// Login authenticates a user and issues an access token
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	user, token, err := ac.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.UnauthorizedResponse(c, "Invalid username or password")
		return
	}

	utils.SuccessResponse(c, "Login successful", gin.H{
		"user":         user,
		"access_token": token,
		"expires_in":   utils.AccessTokenTTL(),
		"token_type":   "Bearer",
	})
}

// Me returns the authenticated user's profile
func (ac *AuthController) Me(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	utils.SuccessResponse(c, "Profile retrieved successfully", gin.H{
		"user":      user,
		"root_path": user.RootPath(),
	})
}
