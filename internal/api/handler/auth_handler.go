package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"uni-analytics/backend/internal/dto"
	"uni-analytics/backend/internal/service"
	"uni-analytics/backend/pkg/response"
)

// AuthHandler serves the gateway login route.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login issues an access token.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}

	result, err := h.authSvc.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid username or password")
			return
		}
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
