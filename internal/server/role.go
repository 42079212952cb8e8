package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	identitydomain "github.com/smallbiznis/sellapp/internal/identity/domain"
)

type createRoleRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateRole(c *gin.Context) {
	var req createRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.identitySvc.CreateRole(c.Request.Context(), identitydomain.CreateRoleRequest{
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRoles(c *gin.Context) {
	resp, err := s.identitySvc.ListRoles(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRoleByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.identitySvc.GetRole(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateRoleRequest struct {
	Name *string `json:"name"`
}

func (s *Server) UpdateRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.identitySvc.UpdateRole(c.Request.Context(), identitydomain.UpdateRoleRequest{
		ID:   strings.TrimSpace(c.Param("id")),
		Name: req.Name,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteRole(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.identitySvc.DeleteRole(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isIdentityValidationError(err error) bool {
	switch err {
	case identitydomain.ErrInvalidName,
		identitydomain.ErrInvalidUsername,
		identitydomain.ErrInvalidPassword,
		identitydomain.ErrInvalidRole,
		identitydomain.ErrInvalidID,
		identitydomain.ErrDuplicateName,
		identitydomain.ErrDuplicateUsername:
		return true
	default:
		return false
	}
}
