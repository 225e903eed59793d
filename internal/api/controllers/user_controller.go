package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hbnb/internal/models/request_models"
	"hbnb/internal/services"
	"hbnb/pkg/middleware"
	"hbnb/pkg/utils"
)

type UserController struct {
	userService   services.UserServiceInterface
	reviewService services.ReviewServiceInterface
}

func NewUserController(userService services.UserServiceInterface, reviewService services.ReviewServiceInterface) *UserController {
	return &UserController{
		userService:   userService,
		reviewService: reviewService,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create a user account. is_admin is honoured only for admin callers.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "User registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /users [post]
func (u *UserController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := u.userService.CreateUser(c.Request.Context(), req, callerOf(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, user, "User created successfully")
}

// Login godoc
// @Summary Login
// @Description Authenticate a user and return an access token
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /users/login [post]
func (u *UserController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := u.userService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, token, "Login successful")
}

// Logout godoc
// @Summary Logout
// @Description Revoke the presented access token
// @Tags Users
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/logout [post]
func (u *UserController) Logout(c *gin.Context) {
	u.userService.Logout(middleware.CurrentClaims(c))
	utils.RespondSuccess(c, nil, "Logged out")
}

// Me godoc
// @Summary Current user
// @Tags Users
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me [get]
func (u *UserController) Me(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	user, err := u.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User fetched successfully")
}

// ListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /users [get]
func (u *UserController) ListUsers(c *gin.Context) {
	users, err := u.userService.ListUsers(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, users, "Users fetched successfully")
}

// GetUser godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /users/{id} [get]
func (u *UserController) GetUser(c *gin.Context) {
	user, err := u.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User fetched successfully")
}

// UpdateUser godoc
// @Summary Update a user
// @Description Users edit themselves; admins edit anyone and may change is_admin.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body request_models.UpdateUserRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (u *UserController) UpdateUser(c *gin.Context) {
	var req request_models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := u.userService.UpdateUser(c.Request.Context(), c.Param("id"), req, callerOf(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User updated successfully")
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags Users
// @Param id path string true "User ID"
// @Success 204
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (u *UserController) DeleteUser(c *gin.Context) {
	if err := u.userService.DeleteUser(c.Request.Context(), c.Param("id"), callerOf(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}

// ListUserReviews godoc
// @Summary Reviews written by a user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /users/{id}/reviews [get]
func (u *UserController) ListUserReviews(c *gin.Context) {
	reviews, err := u.reviewService.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reviews, "Reviews fetched successfully")
}
