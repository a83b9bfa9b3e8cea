package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/rental"
	"github.com/faizm10/DressToImpress-sub000/internal/service"
	"github.com/faizm10/DressToImpress-sub000/pkg/response"
)

// CatalogHandler public, unauthenticated catalog
type CatalogHandler struct {
	attireSvc  service.AttireService
	requestSvc service.AttireRequestService
}

// NewCatalogHandler creates a CatalogHandler
func NewCatalogHandler(attireSvc service.AttireService, requestSvc service.AttireRequestService) *CatalogHandler {
	return &CatalogHandler{attireSvc: attireSvc, requestSvc: requestSvc}
}

// List catalog shown to students
// GET /api/v1/catalog/attires
func (h *CatalogHandler) List(c *gin.Context) {
	var req dto.AttireListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.attireSvc.ListPublic(c.Request.Context(), &req)
	if err != nil {
		handleAttireError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Categories sizes and categories per gender
// GET /api/v1/catalog/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	response.OK(c, h.attireSvc.Categories())
}

// Request a student books an attire for a period; the booking always starts as Requested
// POST /api/v1/catalog/requests
func (h *CatalogHandler) Request(c *gin.Context) {
	var req dto.CreateAttireRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	req.Status = string(rental.StatusRequested)
	req.BufferDays = nil

	result, err := h.requestSvc.Create(c.Request.Context(), &req, "")
	if err != nil {
		handleRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// Availability occupied and buffer days of one attire
// GET /api/v1/catalog/attires/:id/availability?from=&to=
func (h *CatalogHandler) Availability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.requestSvc.Availability(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}
