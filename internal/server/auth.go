package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/bizdesk/internal/auth/domain"
	"github.com/smallbiznis/bizdesk/internal/auth/password"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type loginResponse struct {
	User      *authdomain.User `json:"user"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	email := strings.TrimSpace(req.Email)
	if !s.allowLogin(c, email) {
		s.obsMetrics.RecordLogin(c.Request.Context(), "limited")
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			outcome = "invalid"
		}
		s.obsMetrics.RecordLogin(c.Request.Context(), outcome)
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordLogin(c.Request.Context(), "ok")

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)

	c.JSON(http.StatusOK, gin.H{"data": loginResponse{
		User:      result.User,
		Token:     result.RawToken,
		ExpiresAt: result.ExpiresAt,
	}})
}

func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil && !errors.Is(err, authdomain.ErrInvalidSession) {
			AbortWithError(c, err)
			return
		}
	}

	s.sessions.Clear(c)
	c.Status(http.StatusNoContent)
}

func (s *Server) Me(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	user, err := s.authsvc.GetUser(c.Request.Context(), session.UserID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	company, err := s.companySvc.GetByID(c.Request.Context(), session.CompanyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"user":       user,
		"company":    company,
		"expires_at": session.ExpiresAt,
	}})
}

func (s *Server) ChangePassword(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.CurrentPassword) == "" {
		AbortWithError(c, newValidationError("current_password", "required", "current password is required"))
		return
	}

	user, err := s.authsvc.GetUser(c.Request.Context(), session.UserID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !password.Verify(req.CurrentPassword, user.PasswordHash) {
		AbortWithError(c, authdomain.ErrInvalidCredentials)
		return
	}

	if err := s.authsvc.ChangePassword(c.Request.Context(), user.ID, req.NewPassword); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetCompanyProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.company.Get()})
}
