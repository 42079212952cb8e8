package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	newsdomain "github.com/smallbiznis/sellapp/internal/news/domain"
)

type createNewsRequest struct {
	Title   string  `json:"title"`
	Slug    string  `json:"slug"`
	Content *string `json:"content"`
}

func (s *Server) CreateNews(c *gin.Context) {
	var req createNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.newsSvc.Create(c.Request.Context(), newsdomain.CreateRequest{
		Title:   strings.TrimSpace(req.Title),
		Slug:    strings.TrimSpace(req.Slug),
		Content: req.Content,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListNews(c *gin.Context) {
	resp, err := s.newsSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetNewsByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.newsSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateNewsRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (s *Server) UpdateNews(c *gin.Context) {
	var req updateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.newsSvc.Update(c.Request.Context(), newsdomain.UpdateRequest{
		ID:      strings.TrimSpace(c.Param("id")),
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteNews(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.newsSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isNewsValidationError(err error) bool {
	switch err {
	case newsdomain.ErrInvalidTitle,
		newsdomain.ErrInvalidID,
		newsdomain.ErrDuplicateSlug:
		return true
	default:
		return false
	}
}
