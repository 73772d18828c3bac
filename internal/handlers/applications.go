package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atelier/api/internal/models"
	"atelier/api/internal/service"
)

// 5 MiB is plenty for an application photo.
const maxUploadBytes = 5 << 20

type applicationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func toApplicationResponse(a models.CreatorApplication) applicationResponse {
	return applicationResponse{
		ID:          a.ID,
		Name:        a.Name,
		Phone:       a.Phone,
		Email:       a.Email,
		Message:     a.Message,
		ImageURL:    a.ImageURL,
		Status:      string(a.Status),
		SubmittedAt: a.SubmittedAt,
	}
}

// readImagePart pulls one optional file part out of a multipart form.
func readImagePart(c *gin.Context, field string) ([]byte, error) {
	file, _, err := c.Request.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, maxUploadBytes))
}

// SubmitApplication accepts the public "faça parte" form. Field names
// match the storefront form: nome, telefone, email, mensagem and an
// optional imagem file part.
func (h HandlerSet) SubmitApplication(c *gin.Context) {
	image, err := readImagePart(c, "imagem")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo upload"})
		return
	}

	app, err := h.apps.Submit(c.Request.Context(), service.SubmitApplicationInput{
		Name:    c.PostForm("nome"),
		Phone:   c.PostForm("telefone"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("mensagem"),
		Image:   image,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "application received",
		"application": toApplicationResponse(app),
	})
}

func (h HandlerSet) ListApplications(c *gin.Context) {
	apps, err := h.apps.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		resp = append(resp, toApplicationResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{"applications": resp})
}
