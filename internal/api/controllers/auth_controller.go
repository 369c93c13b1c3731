package controllers

import (
	"github.com/gin-gonic/gin"

	"cropgenesis/internal/models/request_models"
	"cropgenesis/internal/services"
	"cropgenesis/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
}

func NewAuthController(authService services.AuthServiceInterface) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register godoc
// @Summary Register a new farmer account
// @Description Create an account with phone number and password, returns a JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RegisterRequest true "Name, Phone, Location, Password, Language"
// @Success 201 {object} response_models.AuthResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/auth/register [post]
func (a *AuthController) Register(c *gin.Context) {
	var request request_models.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationErrors(c, utils.BindingErrors(err))
		return
	}

	result, err := a.authService.Register(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, result, "User registered successfully")
}

// Login godoc
// @Summary Log in with phone number and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Phone, Password"
// @Success 200 {object} response_models.AuthResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var request request_models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationErrors(c, utils.BindingErrors(err))
		return
	}

	result, err := a.authService.Login(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Login successful")
}

func (a *AuthController) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := a.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile fetched successfully")
}

func (a *AuthController) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationErrors(c, utils.BindingErrors(err))
		return
	}

	profile, err := a.authService.UpdateProfile(c.Request.Context(), userID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile updated successfully")
}

func (a *AuthController) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request request_models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationErrors(c, utils.BindingErrors(err))
		return
	}

	if err := a.authService.ChangePassword(c.Request.Context(), userID, request); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password changed successfully")
}
