package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/response"
)

// SelfHandler what an official sees about themselves.
type SelfHandler struct {
	assignmentSvc service.AssignmentService
	dashboardSvc  service.DashboardService
	userSvc       service.UserService
	calendarSvc   service.CalendarService
}

// NewSelfHandler creates a SelfHandler.
func NewSelfHandler(
	assignmentSvc service.AssignmentService,
	dashboardSvc service.DashboardService,
	userSvc service.UserService,
	calendarSvc service.CalendarService,
) *SelfHandler {
	return &SelfHandler{
		assignmentSvc: assignmentSvc,
		dashboardSvc:  dashboardSvc,
		userSvc:       userSvc,
		calendarSvc:   calendarSvc,
	}
}

// MyGames lists the caller's assignments with their games.
// GET /api/v1/me/games
func (h *SelfHandler) MyGames(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	req.OfficialID = id.UserID

	list, total, err := h.assignmentSvc.List(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSelfError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// MyStats GET /api/v1/me/stats
func (h *SelfHandler) MyStats(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	stats, err := h.dashboardSvc.OfficialStats(c.Request.Context(), id)
	if err != nil {
		h.handleSelfError(c, err)
		return
	}
	response.OK(c, stats)
}

// GetProfile GET /api/v1/me/profile
func (h *SelfHandler) GetProfile(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	profile, err := h.userSvc.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.handleSelfError(c, err)
		return
	}
	response.OK(c, profile)
}

// UpdateProfile PUT /api/v1/me/profile
func (h *SelfHandler) UpdateProfile(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.userSvc.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSelfError(c, err)
		return
	}
	response.OK(c, profile)
}

// CalendarLink GET /api/v1/me/calendar-link
func (h *SelfHandler) CalendarLink(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	link, err := h.calendarSvc.Link(c.Request.Context(), id)
	if err != nil {
		h.handleSelfError(c, err)
		return
	}
	response.OK(c, link)
}

func (h *SelfHandler) handleSelfError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotAnOfficial):
		response.Forbidden(c, 18001, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 18002, err.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		response.Conflict(c, 18003, err.Error())
	default:
		handleKind(c, err)
	}
}
