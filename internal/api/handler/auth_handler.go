package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/service"
	"github.com/faizm10/DressToImpress-sub000/pkg/response"
)

// AuthHandler staff sign-in
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login staff sign-in
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, response.CodeUnauthenticated, "email or password is incorrect")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Me current staff user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	staffID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), staffID)
	if err != nil {
		if errors.Is(err, service.ErrStaffNotFound) {
			response.NotFound(c, response.CodeNotFound, "staff user not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// Logout revokes the current token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp, ok := MustGetToken(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
