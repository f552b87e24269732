package handler

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/api/middleware"
	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/response"
)

// AuthHandler login, logout and the caller's own account.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login checks credentials and starts a session.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(middleware.SessionUserKey, result.User.ID)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "login successful", result)
}

// Logout ends the session.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	response.OKMessage(c, "logged out", nil)
}

// Me returns the caller and their capabilities.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Me(c.Request.Context(), id.UserID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, result)
}

// ChangePassword changes the caller's own password.
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), id, &req); err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OKMessage(c, "password changed", nil)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, err.Error())
	case errors.Is(err, service.ErrAccountDisabled):
		response.Forbidden(c, 11002, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, 10002, "authentication required")
	case errors.Is(err, service.ErrWrongPassword):
		response.BadRequest(c, 11003, err.Error())
	default:
		handleKind(c, err)
	}
}
