package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atelier/api/internal/middleware"
	"atelier/api/internal/models"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Approved     bool      `json:"approved"`
	FirstLogin   bool      `json:"firstLogin"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Email:        u.Email,
		Role:         string(u.Role),
		Approved:     u.Approved,
		FirstLogin:   u.FirstLogin,
		RegisteredAt: u.RegisteredAt,
	}
}

func (h HandlerSet) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration received, awaiting approval",
		"user":    toUserResponse(user),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

func (h HandlerSet) Me(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.accounts.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h HandlerSet) ChangePassword(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.ChangePassword(c.Request.Context(), claims.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "password updated",
		"user":    toUserResponse(user),
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h HandlerSet) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.respondError(c, err)
		return
	}

	// Same answer whether or not the address is registered.
	c.JSON(http.StatusOK, gin.H{"message": "if the address is registered, a reset link has been sent"})
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.ResetPassword(c.Request.Context(), c.Param("token"), req.NewPassword)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "password reset",
		"user":    toUserResponse(user),
	})
}
