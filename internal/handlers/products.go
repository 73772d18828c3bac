package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atelier/api/internal/middleware"
	"atelier/api/internal/models"
	"atelier/api/internal/service"
)

type productResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreatorEmail string    `json:"creatorEmail"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toProductResponse(p models.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		CreatorEmail: p.CreatorEmail,
		Images:       p.Images,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (h HandlerSet) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"products": resp})
}

func (h HandlerSet) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

// productInputFrom reads the multipart form fields shared by create and
// update. "images" parts are fresh uploads; "imageUrls" keeps stored
// references during edits.
func productInputFrom(c *gin.Context) (service.ProductInput, error) {
	input := service.ProductInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}

	form, err := c.MultipartForm()
	if err != nil {
		return service.ProductInput{}, err
	}
	input.ImageURLs = form.Value["imageUrls"]

	for _, header := range form.File["images"] {
		file, err := header.Open()
		if err != nil {
			return service.ProductInput{}, err
		}
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		file.Close()
		if err != nil {
			return service.ProductInput{}, err
		}
		input.Images = append(input.Images, data)
	}

	return input, nil
}

func (h HandlerSet) CreateProduct(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	input, err := productInputFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), claims.Email, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h HandlerSet) UpdateProduct(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	input, err := productInputFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), claims.Email, claims.Role, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h HandlerSet) DeleteProduct(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id"), claims.Email, claims.Role); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
