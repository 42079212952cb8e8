package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/sellapp/internal/catalog/domain"
)

type createProductImageRequest struct {
	ProductID string `json:"product_id"`
	ImageURL  string `json:"image_url"`
}

func (s *Server) CreateProductImage(c *gin.Context) {
	var req createProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreateProductImage(c.Request.Context(), catalogdomain.CreateProductImageRequest{
		ProductID: strings.TrimSpace(req.ProductID),
		ImageURL:  strings.TrimSpace(req.ImageURL),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProductImages(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	resp, err := s.catalogSvc.ListProductImages(c.Request.Context(), productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProductImage(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.catalogSvc.DeleteProductImage(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
