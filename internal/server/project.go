package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	projectdomain "github.com/smallbiznis/bizdesk/internal/project/domain"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	ClientID    string `json:"client_id"`
	Description string `json:"description"`
}

func (s *Server) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.projectSvc.Create(c.Request.Context(), projectdomain.CreateProjectRequest{
		Name:        strings.TrimSpace(req.Name),
		ClientID:    strings.TrimSpace(req.ClientID),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// ListProjects narrows the choices to one client when client_id is given.
func (s *Server) ListProjects(c *gin.Context) {
	resp, err := s.projectSvc.List(c.Request.Context(), strings.TrimSpace(c.Query("client_id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProjectByID(c *gin.Context) {
	resp, err := s.projectSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isProjectValidationError(err error) bool {
	switch err {
	case projectdomain.ErrInvalidName,
		projectdomain.ErrInvalidID,
		projectdomain.ErrInvalidClientID:
		return true
	default:
		return false
	}
}
