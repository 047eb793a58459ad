package http

import (
	"net/http"

	"github.com/aescanero/devops-demo-app/internal/config"
	"github.com/aescanero/devops-demo-app/pkg/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleHome handles the welcome endpoint
func (s *Server) handleHome(c *gin.Context) {
	c.JSON(http.StatusOK, domain.NewHomeResponse())
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, domain.NewHealthResponse())
}

// handleInfo reports application info. ENVIRONMENT and HOST are resolved
// per request.
func (s *Server) handleInfo(c *gin.Context) {
	rt, err := config.LoadRuntime()
	if err != nil {
		s.logger.Error("failed to load runtime info", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    "RUNTIME_INFO_UNAVAILABLE",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, domain.NewInfoResponse(rt.Environment, rt.Host))
}

func (s *Server) handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error: ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "The requested URL was not found on the server",
		},
	})
}

// allowedMethods is the same for every route
const allowedMethods = "GET, HEAD, OPTIONS"

func (s *Server) handleOptions(c *gin.Context) {
	c.Header("Allow", allowedMethods)
	c.Status(http.StatusOK)
}

func (s *Server) handleMethodNotAllowed(c *gin.Context) {
	c.Header("Allow", allowedMethods)
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
		Error: ErrorDetail{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "The method is not allowed for the requested URL",
		},
	})
}
