package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/service"
	pkgerrors "github.com/faizm10/DressToImpress-sub000/pkg/errors"
	"github.com/faizm10/DressToImpress-sub000/pkg/response"
)

// AttireRequestHandler bookings
type AttireRequestHandler struct {
	requestSvc service.AttireRequestService
}

// NewAttireRequestHandler creates an AttireRequestHandler
func NewAttireRequestHandler(requestSvc service.AttireRequestService) *AttireRequestHandler {
	return &AttireRequestHandler{requestSvc: requestSvc}
}

// List paged requests
// GET /api/v1/requests
func (h *AttireRequestHandler) List(c *gin.Context) {
	var req dto.AttireRequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.requestSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleRequestError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Get one request
// GET /api/v1/requests/:id
func (h *AttireRequestHandler) Get(c *gin.Context) {
	result, err := h.requestSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// Create books an attire for a student
// POST /api/v1/requests
func (h *AttireRequestHandler) Create(c *gin.Context) {
	var req dto.CreateAttireRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateStatus moves the request to another status
// PATCH /api/v1/requests/:id/status
func (h *AttireRequestHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.UpdateStatus(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateBuffer changes the cleaning buffer; 202 when the write is debounced
// PATCH /api/v1/requests/:id/buffer
func (h *AttireRequestHandler) UpdateBuffer(c *gin.Context) {
	var req dto.UpdateBufferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.UpdateBuffer(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleRequestError(c, err)
		return
	}

	if result.Queued {
		response.Accepted(c, result)
		return
	}
	response.OK(c, result)
}

// SwitchAttire moves the booking to another attire
// PATCH /api/v1/requests/:id/attire
func (h *AttireRequestHandler) SwitchAttire(c *gin.Context) {
	var req dto.SwitchAttireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.SwitchAttire(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete removes a request
// DELETE /api/v1/requests/:id
func (h *AttireRequestHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	if err := h.requestSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		handleRequestError(c, err)
		return
	}

	response.OK(c, nil)
}

func handleRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, response.CodeRequestNotFound, "attire request not found")
	case errors.Is(err, service.ErrRequestOverlap):
		response.Conflict(c, response.CodeRequestOverlap, "the attire is already booked for part of this period")
	case errors.Is(err, service.ErrRequestLocked):
		response.Conflict(c, response.CodeRequestLocked, "the request can only be changed once it is returned or the student is inactive")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, response.CodeInvalidDateRange, "end date must not be before start date")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, response.CodeInvalidStatus, "invalid request status")
	case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrAvailabilityRange):
		response.BadRequest(c, response.CodeBadParams, err.Error())
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, response.CodeStudentNotFound, "student not found")
	case errors.Is(err, service.ErrAttireNotFound):
		response.NotFound(c, response.CodeAttireNotFound, "attire not found")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, response.CodeConflict, "the request was changed by someone else, reload and retry")
	default:
		response.InternalError(c)
	}
}
