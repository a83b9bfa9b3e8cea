package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/service"
	"github.com/faizm10/DressToImpress-sub000/pkg/response"
)

// NotificationHandler templated student email
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler creates a NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// SendEmail renders a template and sends it
// POST /api/v1/notifications/email
func (h *NotificationHandler) SendEmail(c *gin.Context) {
	var req dto.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	err := h.notificationSvc.SendEmail(c.Request.Context(), &req)
	switch {
	case err == nil:
		response.OK(c, dto.SendEmailResponse{Success: true})
	case errors.Is(err, service.ErrUnknownTemplate):
		response.BadRequest(c, response.CodeUnknownTemplate, "unknown email template")
	case errors.Is(err, service.ErrEmailFailed):
		c.JSON(http.StatusBadGateway, response.Response{
			Code:    response.CodeEmailFailed,
			Message: "email delivery failed",
			Data:    dto.SendEmailResponse{Success: false, Error: err.Error()},
		})
	default:
		response.InternalError(c)
	}
}
