package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	promotiondomain "github.com/smallbiznis/sellapp/internal/promotion/domain"
)

type createPromotionRequest struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

func (s *Server) CreatePromotion(c *gin.Context) {
	var req createPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.promotionSvc.Create(c.Request.Context(), promotiondomain.CreateRequest{
		Title:       strings.TrimSpace(req.Title),
		Slug:        strings.TrimSpace(req.Slug),
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPromotions(c *gin.Context) {
	resp, err := s.promotionSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPromotionByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.promotionSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updatePromotionRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func (s *Server) UpdatePromotion(c *gin.Context) {
	var req updatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.promotionSvc.Update(c.Request.Context(), promotiondomain.UpdateRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePromotion(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.promotionSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

type attachPromotionProductRequest struct {
	ProductID string `json:"product_id"`
}

func (s *Server) AttachPromotionProduct(c *gin.Context) {
	var req attachPromotionProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.promotionSvc.AttachProduct(c.Request.Context(), strings.TrimSpace(c.Param("id")), strings.TrimSpace(req.ProductID))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DetachPromotionProduct(c *gin.Context) {
	promotionID := strings.TrimSpace(c.Param("id"))
	productID := strings.TrimSpace(c.Param("productId"))
	if err := s.promotionSvc.DetachProduct(c.Request.Context(), promotionID, productID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"detached": true}})
}

func (s *Server) ListPromotionProducts(c *gin.Context) {
	promotionID := strings.TrimSpace(c.Param("id"))
	resp, err := s.promotionSvc.ListProducts(c.Request.Context(), promotionID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isPromotionValidationError(err error) bool {
	switch err {
	case promotiondomain.ErrInvalidTitle,
		promotiondomain.ErrInvalidDateRange,
		promotiondomain.ErrInvalidProduct,
		promotiondomain.ErrInvalidID,
		promotiondomain.ErrDuplicateSlug,
		promotiondomain.ErrDuplicateLink:
		return true
	default:
		return false
	}
}
