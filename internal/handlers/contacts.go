package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atelier/api/internal/models"
	"atelier/api/internal/service"
)

// contactRequest mirrors the storefront "gostou?" form field names.
type contactRequest struct {
	Name      string `json:"nome" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"telefone"`
	Message   string `json:"mensagem" binding:"required"`
	ProductID string `json:"productId"`
}

type contactResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Message     string    `json:"message"`
	ProductID   string    `json:"productId,omitempty"`
	ProductName string    `json:"productName,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func toContactResponse(ct models.Contact) contactResponse {
	return contactResponse{
		ID:          ct.ID,
		Name:        ct.Name,
		Email:       ct.Email,
		Phone:       ct.Phone,
		Message:     ct.Message,
		ProductID:   ct.ProductID,
		ProductName: ct.ProductName,
		SubmittedAt: ct.SubmittedAt,
	}
}

func (h HandlerSet) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.catalog.SubmitContact(c.Request.Context(), service.ContactInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		ProductID: req.ProductID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "message sent",
		"contact": toContactResponse(contact),
	})
}

func (h HandlerSet) ListContacts(c *gin.Context) {
	contacts, err := h.catalog.ListContacts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]contactResponse, 0, len(contacts))
	for _, ct := range contacts {
		resp = append(resp, toContactResponse(ct))
	}
	c.JSON(http.StatusOK, gin.H{"contacts": resp})
}
