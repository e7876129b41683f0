package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetFinancialReport returns the figures with the insight text. A failed
// insight still yields a 200 carrying the pending placeholder.
func (s *Server) GetFinancialReport(c *gin.Context) {
	resp, err := s.reportSvc.FinancialReport(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
