package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/service"
	"github.com/faizm10/DressToImpress-sub000/pkg/response"
)

const icsFilename = "dress-for-success.ics"

// CalendarHandler month grid and iCalendar feed
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler creates a CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// Month 6x7 grid with rental and buffer events
// GET /api/v1/calendar?year=&month=
func (h *CalendarHandler) Month(c *gin.Context) {
	var req dto.CalendarMonthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.calendarSvc.Month(c.Request.Context(), &req)
	if err != nil {
		handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// ICS blocking bookings as an iCalendar file
// GET /api/v1/calendar.ics
func (h *CalendarHandler) ICS(c *gin.Context) {
	var req dto.CalendarFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	data, err := h.calendarSvc.ICS(c.Request.Context(), &req)
	if err != nil {
		handleRequestError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+icsFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}
