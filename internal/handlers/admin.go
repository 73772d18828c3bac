package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier/api/internal/middleware"
	"atelier/api/internal/service"
)

type approveCreatorRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h HandlerSet) ApproveCreator(c *gin.Context) {
	var req approveCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.accounts.Approve(c.Request.Context(), req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, approveResponse(result))
}

// approveResponse leaves applicationStatus out entirely when the
// approval matched an account that never submitted an application.
func approveResponse(result service.ApproveResult) gin.H {
	resp := gin.H{
		"user":              toUserResponse(result.User),
		"credentialsIssued": result.CredentialsIssued,
	}
	if result.Application.ID != "" {
		resp["applicationStatus"] = result.Application.Status
	}
	return resp
}

type rejectCreatorRequest struct {
	Email  string `json:"email" binding:"required"`
	Reason string `json:"reason"`
}

func (h HandlerSet) RejectCreator(c *gin.Context) {
	var req rejectCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.accounts.Reject(c.Request.Context(), req.Email, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rejectResponse(result))
}

func rejectResponse(result service.RejectResult) gin.H {
	resp := gin.H{}
	if result.Application.ID != "" {
		resp["applicationStatus"] = result.Application.Status
	}
	if result.User != nil {
		resp["user"] = toUserResponse(*result.User)
	}
	return resp
}

func (h HandlerSet) DeleteUser(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.accounts.DeleteAccount(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	users, err := h.accounts.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}
