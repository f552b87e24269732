package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/response"
)

// CalendarHandler serves the public ICS feed. The signed token in the path
// is the only credential.
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// Feed GET /api/v1/calendar/:token
func (h *CalendarHandler) Feed(c *gin.Context) {
	body, err := h.calendarSvc.Feed(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, service.ErrFeedTokenInvalid) {
			response.NotFound(c, 18101, err.Error())
			return
		}
		handleKind(c, err)
		return
	}

	c.Header("Cache-Control", "private, max-age=300")
	c.Header("Content-Disposition", `inline; filename="assignments.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}
