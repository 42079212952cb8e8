package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	commentdomain "github.com/smallbiznis/sellapp/internal/comment/domain"
)

type createCommentRequest struct {
	TargetType string  `json:"target_type"`
	TargetID   string  `json:"target_id"`
	Rating     *int    `json:"rating"`
	Body       *string `json:"body"`
}

func (s *Server) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.commentSvc.Create(c.Request.Context(), commentdomain.CreateRequest{
		TargetType: strings.TrimSpace(req.TargetType),
		TargetID:   strings.TrimSpace(req.TargetID),
		Rating:     req.Rating,
		Body:       req.Body,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListComments(c *gin.Context) {
	var query struct {
		TargetType string `form:"target_type"`
		TargetID   string `form:"target_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.commentSvc.List(c.Request.Context(), commentdomain.ListRequest{
		TargetType: strings.TrimSpace(query.TargetType),
		TargetID:   strings.TrimSpace(query.TargetID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCommentByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.commentSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteComment(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.commentSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isCommentValidationError(err error) bool {
	switch err {
	case commentdomain.ErrInvalidTarget,
		commentdomain.ErrInvalidRating,
		commentdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
