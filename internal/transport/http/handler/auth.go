package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recipeshare/internal/app"
	"recipeshare/internal/model"
	"recipeshare/internal/transport/http/middleware"
	"recipeshare/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

type RegisterRequest struct {
	Name     string `form:"name" binding:"required"`
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name string `form:"name" binding:"required"`
	Bio  string `form:"bio"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	_, err := h.authService.Register(app.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Fail(c, http.StatusBadRequest, "invalid request payload")
		case errors.Is(err, app.ErrUsernameExists):
			response.Fail(c, http.StatusConflict, "User already exist")
		default:
			response.Fail(c, http.StatusInternalServerError, "register failed")
		}
		return
	}

	response.OK(c, "User registered successfully!", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	token, err := h.authService.Login(app.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredential) {
			response.Fail(c, http.StatusUnauthorized, "User not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "login failed")
		return
	}

	response.OK(c, "Logged in successfully", gin.H{"token": token})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Invalid or inactive user!")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	// Absent file is fine: the existing avatar is kept.
	picture, err := c.FormFile("profile_pic")
	if err != nil {
		picture = nil
	}

	if err := h.authService.UpdateProfile(user, app.UpdateProfileInput{
		Name:    req.Name,
		Bio:     req.Bio,
		Picture: picture,
	}); err != nil {
		response.Fail(c, http.StatusInternalServerError, "update profile failed")
		return
	}

	response.OK(c, "Profile updated successfully!", nil)
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.authService.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "fetch user failed")
		return
	}

	response.OK(c, "Profile retrieved successfully", gin.H{"user": userView(user)})
}

// userView shapes a user for transport: string-form id, no password hash.
func userView(user *model.User) gin.H {
	return gin.H{
		"id":          strconv.FormatUint(uint64(user.ID), 10),
		"name":        user.Name,
		"username":    user.Username,
		"profile_pic": user.ProfilePic,
		"bio":         user.Bio,
	}
}
