package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/response"
)

// UserHandler accounts and official profiles.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), id, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// CreateUser POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userSvc.CreateUser(c.Request.Context(), id, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.Created(c, user)
}

// GetUser GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	userID, err := uuidParam(c, "id", service.ErrUserNotFound)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	user, err := h.userSvc.Get(c.Request.Context(), id, userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, user)
}

// DeactivateUser is a soft delete.
// DELETE /api/v1/users/:id
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	userID, err := uuidParam(c, "id", service.ErrUserNotFound)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	if err := h.userSvc.Deactivate(c.Request.Context(), id, userID); err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OKMessage(c, "user deactivated", nil)
}

// ListOfficials GET /api/v1/officials
func (h *UserHandler) ListOfficials(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	officials, total, err := h.userSvc.ListOfficials(c.Request.Context(), id, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OKPage(c, officials, total, req.GetPage(), req.GetPageSize())
}

// CreateOfficial POST /api/v1/officials
func (h *UserHandler) CreateOfficial(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.OfficialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	official, err := h.userSvc.CreateOfficial(c.Request.Context(), id, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.Created(c, official)
}

// GetOfficial GET /api/v1/officials/:id
func (h *UserHandler) GetOfficial(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	userID, err := uuidParam(c, "id", service.ErrUserNotFound)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	official, err := h.userSvc.Get(c.Request.Context(), id, userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	if official.Role != model.RoleOfficial {
		h.handleUserError(c, service.ErrNotAnOfficial)
		return
	}
	response.OK(c, official)
}

// UpdateOfficial PUT /api/v1/officials/:id
func (h *UserHandler) UpdateOfficial(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateOfficialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, err := uuidParam(c, "id", service.ErrUserNotFound)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	official, err := h.userSvc.UpdateOfficial(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, official)
}

// SearchUser finds an account by email.
// POST /api/v1/users/search
func (h *UserHandler) SearchUser(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UserSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userSvc.Search(c.Request.Context(), id, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		response.Conflict(c, 12002, err.Error())
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, 12003, err.Error())
	case errors.Is(err, service.ErrRoleNotAllowed):
		response.Forbidden(c, 12004, err.Error())
	case errors.Is(err, service.ErrSelfDeactivate):
		response.BadRequest(c, 12005, err.Error())
	case errors.Is(err, service.ErrNotAnOfficial):
		response.NotFound(c, 12006, err.Error())
	default:
		handleKind(c, err)
	}
}
